package fsutil

import "os"

// File and directory permission modes used across the engine.
const (
	// DirModeSecure is the mode for directories created by archbox.
	DirModeSecure os.FileMode = 0o755
	// FileModeSecure is the mode for regular files written by archbox.
	FileModeSecure os.FileMode = 0o644
	// FileModeExecutable is the mode for installed binaries and scripts.
	FileModeExecutable os.FileMode = 0o755
)
