package installer

import "strings"

// rewriteDesktopExec points every Exec= line of a desktop entry at the
// installed AppImage, dropping the bundled AppRun invocation.
func rewriteDesktopExec(entry, target string) string {
	lines := strings.Split(entry, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "Exec=") {
			lines[i] = "Exec=" + target
		}
		if strings.HasPrefix(l, "TryExec=") {
			lines[i] = "TryExec=" + target
		}
	}
	return strings.Join(lines, "\n")
}
