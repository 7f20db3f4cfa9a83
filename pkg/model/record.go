package model

import "time"

// Outcome is the terminal result of an install attempt.
type Outcome string

// Install record outcomes. A later record for the same name supersedes
// earlier ones; history is never deleted.
const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeRemoved Outcome = "removed"
)

// InstallRecord is one persisted entry of the state store.
type InstallRecord struct {
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Method      InstallMethod `json:"method"`
	InstalledAt time.Time     `json:"installed_at"`
	Outcome     Outcome       `json:"outcome"`
	Reason      string        `json:"reason,omitempty"`
}

// Installed reports whether this record marks the package as currently
// installed.
func (r *InstallRecord) Installed() bool {
	return r != nil && r.Outcome == OutcomeSuccess
}
