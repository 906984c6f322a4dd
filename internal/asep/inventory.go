package asep

import (
	"sort"
	"strings"
)

// Sentinels used when a process's command line or a module path could not
// be recovered from the snapshot.
const (
	NoCmdline = "[no cmdline]"
	NoDLLName = "[no dllname]"
)

// ProcessRecord is one running process as seen in the snapshot: its PID,
// raw command line, and the full paths of its loaded modules.
type ProcessRecord struct {
	PID         int
	CommandLine string
	Modules     []string
}

// ProcessInventory maps PID to ProcessRecord. It is built once per scan and
// read-only afterwards; every extractor queries it through FindPIDs.
type ProcessInventory map[int]ProcessRecord

// NewProcessInventory builds the inventory from a process listing,
// substituting sentinels for missing command lines and module names.
func NewProcessInventory(records []ProcessRecord) ProcessInventory {
	inv := make(ProcessInventory, len(records))
	for _, rec := range records {
		if rec.CommandLine == "" {
			rec.CommandLine = NoCmdline
		}
		modules := make([]string, len(rec.Modules))
		for i, m := range rec.Modules {
			if m == "" {
				m = NoDLLName
			}
			modules[i] = m
		}
		rec.Modules = modules
		inv[rec.PID] = rec
	}
	return inv
}

// FindPIDs maps a registry-referenced executable or module path to the PIDs
// plausibly running it. A PID matches when the sanitized reference is a
// substring of the process's sanitized command line, or of the sanitized
// path of any loaded module.
//
// This is deliberately a fuzzy, substring-based heuristic: registry-stored
// paths frequently add or omit quoting, environment placeholders, and
// trailing switches relative to the live command line, so exact equality
// would miss real matches. The cost is occasional false positives when a
// short fragment coincidentally appears in an unrelated command line.
//
// An empty reference returns an empty set rather than matching everything.
// The result is deduplicated and sorted; it is never nil.
func (inv ProcessInventory) FindPIDs(reference string) []int {
	pids := []int{}
	reference = SanitizePath(reference)
	if reference == "" {
		return pids
	}

	for pid, rec := range inv {
		if strings.Contains(SanitizePath(rec.CommandLine), reference) {
			pids = append(pids, pid)
			continue
		}
		for _, module := range rec.Modules {
			if strings.Contains(SanitizePath(module), reference) {
				pids = append(pids, pid)
				break
			}
		}
	}
	sort.Ints(pids)
	return pids
}
