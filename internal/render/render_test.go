package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asepscan/internal/asep"
)

var reportWriteTime = time.Date(2010, 6, 16, 23, 52, 20, 0, time.UTC)

func sampleReport() *asep.Report {
	return &asep.Report{
		Autoruns: []asep.HiveAutoruns{{
			HiveName: `\Device\HarddiskVolume1\WINDOWS\system32\config\software`,
			Groups: []asep.RunKeyGroup{{
				KeyPath:       `Microsoft\Windows\CurrentVersion\Run`,
				LastWriteTime: reportWriteTime,
				Entries: []asep.RunEntry{{
					ValueName: "MyApp",
					Target:    `c:\apps\app.exe --flag`,
					PIDs:      []int{1234},
				}},
			}},
		}},
		Services: []asep.ServiceEntry{{
			ServiceName:   "Spooler",
			DisplayName:   "Print Spooler",
			StartupKind:   "Auto Start",
			ServiceKind:   "Share_Process",
			ImagePath:     `c:\windows\system32\spoolsv.exe`,
			LastWriteTime: reportWriteTime,
			PIDs:          []int{1536},
		}},
		Winlogon: []asep.WinlogonDefaultEntry{{
			ValueName:     "Shell",
			Target:        "explorer.exe",
			DefaultName:   "Explorer.exe",
			LastWriteTime: reportWriteTime,
			PIDs:          []int{},
		}},
		WinlogonRegistrations: []asep.WinlogonNotifyEntry{{
			DLLPath: `c:\windows\system32\evil.dll`,
			HookedEvents: []asep.HookedEvent{
				{Event: "Logon", Handler: "LogonHandler"},
			},
			LastWriteTime: reportWriteTime,
			PIDs:          []int{},
		}},
		AppInit: asep.AppInitEntry{DLLPaths: []string{`c:\bad\inject.dll`}},
	}
}

func TestTextSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "Autoruns ")
	assert.Contains(t, out, `Hive: \Device\HarddiskVolume1\WINDOWS\system32\config\software`)
	assert.Contains(t, out, `Microsoft\Windows\CurrentVersion\Run (Last modified: 2010-06-16 23:52:20 UTC)`)
	assert.Contains(t, out, `c:\apps\app.exe --flag (PIDs: 1234)`)

	assert.Contains(t, out, "Service: Spooler (Print Spooler) - Share_Process, Auto Start")
	assert.Contains(t, out, "Shell: explorer.exe (default: Explorer.exe)")
	assert.Contains(t, out, "Winlogon Notify registrations")
	assert.Contains(t, out, "LogonHandler")
	assert.Contains(t, out, `c:\bad\inject.dll`)
}

func TestTextOmitsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, &asep.Report{}))
	assert.Empty(t, buf.String())
}

func TestJSONRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleReport()))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 5)

	// Notify registrations come first, then Winlogon values, run keys,
	// services and AppInit DLLs.
	assert.Equal(t, "Winlogon (Notify)", rows[0]["Source"])
	assert.Equal(t, "Winlogon (Shell)", rows[1]["Source"])
	assert.Equal(t, `software (Run)`, rows[2]["Source"])
	assert.Equal(t, "Services", rows[3]["Source"])
	assert.Equal(t, "AppInit_DLLs", rows[4]["Source"])

	assert.Equal(t, `c:\apps\app.exe --flag`, rows[2]["Executable"])
	assert.Equal(t, "2010-06-16T23:52:20Z", rows[2]["LastWriteTime"])
	assert.Equal(t, []any{float64(1234)}, rows[2]["PIDs"])

	// AppInit rows have no timestamp and an empty PID set.
	assert.Equal(t, "", rows[4]["LastWriteTime"])
	assert.Equal(t, []any{}, rows[4]["PIDs"])
}

func TestJSONKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleReport()))

	var rows []json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.NotEmpty(t, rows)

	dec := json.NewDecoder(bytes.NewReader(rows[0]))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))
		var v json.RawMessage
		require.NoError(t, dec.Decode(&v))
	}
	assert.Equal(t, []string{"Executable", "Source", "LastWriteTime", "Details", "PIDs"}, keys)
}

func TestFormatPIDs(t *testing.T) {
	assert.Equal(t, "-", formatPIDs(nil))
	assert.Equal(t, "-", formatPIDs([]int{}))
	assert.Equal(t, "4", formatPIDs([]int{4}))
	assert.Equal(t, "4, 880, 1536", formatPIDs([]int{4, 880, 1536}))
}

func TestHiveSource(t *testing.T) {
	assert.Equal(t, "software",
		hiveSource(`\Device\HarddiskVolume1\WINDOWS\system32\config\software`))
	assert.Equal(t, `bob\NTUSER.DAT`,
		hiveSource(`\Device\HarddiskVolume1\Documents and Settings\bob\NTUSER.DAT`))
	assert.Equal(t, "[no name]", hiveSource("[no name]"))
}
