// Package errors defines the sentinel errors shared across the archbox engine.
package errors

import "fmt"

// Resolution errors. These abort a run before any installation begins.
var (
	ErrUnknownPackage    = fmt.Errorf("package not found in catalog")
	ErrCyclicDependency  = fmt.Errorf("cyclic dependency")
	ErrDependencyFailed  = fmt.Errorf("dependency failed")
	ErrUnsupportedMethod = fmt.Errorf("unsupported installation method")
)

// Dispatch errors. These are local to one package and never abort a run.
var (
	ErrDownloadFailed    = fmt.Errorf("download failed")
	ErrChecksumMismatch  = fmt.Errorf("checksum mismatch")
	ErrSubprocessFailed  = fmt.Errorf("subprocess exited non-zero")
	ErrInstallTimeout    = fmt.Errorf("install timed out")
	ErrInstallCancelled  = fmt.Errorf("install cancelled")
	ErrIntegrationFailed = fmt.Errorf("desktop integration failed")
	ErrElevationRequired = fmt.Errorf("privilege elevation required but not permitted")
	ErrHelperNotFound    = fmt.Errorf("helper command not found")
	ErrRemoveUnsupported = fmt.Errorf("removal not supported for this installation method")
)

// State store errors.
var (
	ErrStoreLocked  = fmt.Errorf("state store is locked by another run")
	ErrInvalidPath  = fmt.Errorf("invalid path")
	ErrNotInstalled = fmt.Errorf("package is not installed")
)

// Config and catalog errors.
var (
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrCatalogParse     = fmt.Errorf("failed to parse package definition")
	ErrValidation       = fmt.Errorf("invalid package definition")
	ErrProfileNotFound  = fmt.Errorf("profile not found")
	ErrCatalogDirectory = fmt.Errorf("package directory not found")
)

// Hook errors.
var (
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
