package model

import "time"

// PackageState is a package's state within one run. Every package moves
// Pending -> Skipped | Installing -> Installed | Failed.
type PackageState string

// Run states. Skipped, Installed and Failed are terminal.
const (
	StatePending    PackageState = "pending"
	StateInstalling PackageState = "installing"
	StateInstalled  PackageState = "installed"
	StateFailed     PackageState = "failed"
	StateSkipped    PackageState = "skipped"
	StateRemoved    PackageState = "removed"
)

// Skip reasons surfaced in run reports.
const (
	SkipAlreadyInstalled = "already installed"
	SkipDependencyFailed = "dependency failed"
	SkipDryRun           = "dry run"
	SkipRunCancelled     = "run cancelled"
)

// PackageResult is the terminal outcome of one package within a run.
type PackageResult struct {
	Name     string
	Version  string
	Method   InstallMethod
	State    PackageState
	Reason   string
	Warnings []string
	Duration time.Duration
}

// RunReport is the ordered sequence of per-package outcomes for one
// invocation. It is never persisted; the CLI layer renders it.
type RunReport struct {
	Started  time.Time
	Finished time.Time
	Results  []PackageResult
}

// Add appends a package result to the report.
func (r *RunReport) Add(res PackageResult) {
	r.Results = append(r.Results, res)
}

// Failed reports whether any package reached the Failed terminal state. The
// process exit status follows this.
func (r *RunReport) Failed() bool {
	for _, res := range r.Results {
		if res.State == StateFailed {
			return true
		}
	}
	return false
}

// Installed returns the number of packages that reached Installed.
func (r *RunReport) Installed() int {
	n := 0
	for _, res := range r.Results {
		if res.State == StateInstalled {
			n++
		}
	}
	return n
}

// Result returns the result for name, or nil if the package was not part of
// the run.
func (r *RunReport) Result(name string) *PackageResult {
	for i := range r.Results {
		if r.Results[i].Name == name {
			return &r.Results[i]
		}
	}
	return nil
}
