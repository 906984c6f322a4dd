package asep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInventory() ProcessInventory {
	return NewProcessInventory([]ProcessRecord{
		{PID: 4, CommandLine: "", Modules: []string{`\SystemRoot\System32\ntoskrnl.exe`}},
		{PID: 1234, CommandLine: `"C:\Apps\app.exe" --flag`, Modules: []string{`C:\Apps\app.exe`, `C:\Windows\System32\kernel32.dll`}},
		{PID: 2000, CommandLine: `C:\Windows\System32\svchost.exe -k netsvcs`, Modules: []string{`c:\windows\system32\evilsvc.dll`, ""}},
	})
}

func TestFindPIDsEmptyReference(t *testing.T) {
	inv := testInventory()
	assert.Empty(t, inv.FindPIDs(""))
	// A reference that sanitizes to nothing must not match everything.
	assert.Empty(t, inv.FindPIDs("\x00\"'"))
	assert.NotNil(t, inv.FindPIDs(""))
}

func TestFindPIDsCommandLineMatch(t *testing.T) {
	inv := testInventory()
	// Registry form differs by quoting and case from the live command line.
	assert.Equal(t, []int{1234}, inv.FindPIDs(`C:\APPS\APP.EXE`))
	// The heuristic is substring containment, so a directory prefix of a
	// live command line also matches.
	assert.Equal(t, []int{1234}, inv.FindPIDs(`c:\apps`))
}

func TestFindPIDsModuleMatch(t *testing.T) {
	inv := testInventory()
	assert.Equal(t, []int{2000}, inv.FindPIDs(`evilsvc.dll`))
}

func TestFindPIDsBothRulesCollapse(t *testing.T) {
	inv := testInventory()
	// app.exe appears in PID 1234's command line and module list; the PID
	// must be reported once.
	assert.Equal(t, []int{1234}, inv.FindPIDs(`app.exe`))
}

func TestFindPIDsSentinelsDoNotLeakMatches(t *testing.T) {
	inv := testInventory()
	// PID 4 has no command line; its sentinel must not match a path lookup
	// that matches nothing else in the inventory.
	assert.Empty(t, inv.FindPIDs(`c:\missing\ghost.exe`))

	rec, ok := inv[4]
	require.True(t, ok)
	assert.Equal(t, NoCmdline, rec.CommandLine)

	rec2000 := inv[2000]
	assert.Equal(t, NoDLLName, rec2000.Modules[1])
}

func TestFindPIDsMonotonic(t *testing.T) {
	records := []ProcessRecord{
		{PID: 10, CommandLine: `c:\tools\agent.exe`},
	}
	before := NewProcessInventory(records).FindPIDs(`agent.exe`)

	grown := append(records, ProcessRecord{PID: 11, CommandLine: `c:\other\agent.exe --svc`})
	after := NewProcessInventory(grown).FindPIDs(`agent.exe`)

	assert.Subset(t, after, before, "adding a matching process must not shrink the result set")
	assert.Equal(t, []int{10, 11}, after)
}

func TestFindPIDsSorted(t *testing.T) {
	inv := NewProcessInventory([]ProcessRecord{
		{PID: 300, CommandLine: `c:\x\same.exe`},
		{PID: 5, CommandLine: `c:\y\same.exe`},
		{PID: 40, CommandLine: `c:\z\same.exe`},
	})
	assert.Equal(t, []int{5, 40, 300}, inv.FindPIDs("same.exe"))
}
