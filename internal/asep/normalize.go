package asep

import "strings"

// sanitizeReplacer removes path decorations that vary between how a path is
// stored in the registry and how it appears in a live command line: the
// SystemRoot/windir placeholders, the NT device-namespace prefix, embedded
// NULs, and quoting.
var sanitizeReplacer = strings.NewReplacer(
	`%systemroot%\`, "",
	`\systemroot\`, "",
	`%windir%`, "",
	`\??\`, "",
	"\x00", "",
	`"`, "",
	`'`, "",
)

// SanitizePath canonicalizes a registry-referenced path or command-line
// string for comparison. The output is lower-cased and stripped of
// equivalent-form decorations. The function is pure; empty input yields
// empty output. Replacement is a single left-to-right pass, so a removal
// is never re-applied to text it exposes; that makes the function
// idempotent for path-shaped input but not for contrived strings where
// deleting one token splices a new token together.
func SanitizePath(path string) string {
	return sanitizeReplacer.Replace(strings.ToLower(path))
}
