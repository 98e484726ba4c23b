package corpus

import (
	"os"
	"path/filepath"
)

// DefaultDir resolves the well-known per-user directory holding the
// session corpus. The XDG-style location introduced in Claude Code
// v1.0.30 is preferred; the legacy location is used as a fallback when
// the XDG one does not exist (see upstream issue #19972).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, candidate := range candidates(home) {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return candidates(home)[0]
}

func candidates(home string) []string {
	return []string{
		filepath.Join(home, ".config", "claude", "projects"),
		filepath.Join(home, ".claude", "projects"),
	}
}

// EncodeProjectPath turns an absolute project directory path into the
// flattened directory name the corpus stores its session files under:
// path separators, dots and underscores are all replaced with "-".
func EncodeProjectPath(absPath string) string {
	out := make([]rune, 0, len(absPath))
	for _, r := range absPath {
		switch r {
		case '/', '.', '_':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
