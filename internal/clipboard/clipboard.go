// Package clipboard wraps the system clipboard for the few things the
// TUI copies out: a message body, its raw JSON, a session id, a file
// path, or a project path. It is a thin adapter over
// github.com/atotto/clipboard (pbcopy on Darwin, xclip/xsel on Linux),
// matching the teacher's yank* commands in spirit: build a string, try
// to write it, report success or failure as a status message.
package clipboard

import "github.com/atotto/clipboard"

// Write copies content to the system clipboard. On a platform atotto's
// clipboard package does not support, or when no clipboard utility is
// found on the PATH, it returns an error describing why — the caller
// turns that into a transient status message rather than failing.
func Write(content string) error {
	return clipboard.WriteAll(content)
}
