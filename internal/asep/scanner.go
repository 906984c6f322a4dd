package asep

import (
	"fmt"

	"github.com/phuslu/log"
)

// ASEP categories selectable by the operator.
const (
	CategoryAutoruns = "autoruns"
	CategoryServices = "services"
	CategoryAppInit  = "appinit"
	CategoryWinlogon = "winlogon"
)

// AllCategories lists every supported category, in scan order.
var AllCategories = []string{
	CategoryAutoruns,
	CategoryServices,
	CategoryAppInit,
	CategoryWinlogon,
}

// HiveInfo is one discovered hive: its display name, the storage offset it
// was found at in the memory image, and its parsed root key. Root is nil
// when the hive's root could not be resolved, which is common for
// partially-overwritten or unmapped hive fragments.
type HiveInfo struct {
	Name   string
	Offset uint64
	Root   Key
}

// Options controls a scan pass.
type Options struct {
	// Categories selects which mechanisms to scan; empty means all.
	Categories []string
	// Verbose disables the noise filters that hide stock OS entries.
	Verbose bool
	// HiveOffset restricts the scan to the hive at this storage offset.
	// With an explicit offset, an unresolvable root is an error instead of
	// a silent skip.
	HiveOffset    uint64
	HiveOffsetSet bool
	// ExtraKey is an operator-supplied registry key path scanned as an
	// additional run key in every user and software hive.
	ExtraKey string
}

// Scanner correlates ASEPs in a set of hives against a process inventory.
// A Scanner performs a single synchronous pass; nothing in it is shared
// across goroutines.
type Scanner struct {
	inventory ProcessInventory
	opts      Options
}

// NewScanner builds a scanner over an already-constructed inventory.
func NewScanner(inventory ProcessInventory, opts Options) *Scanner {
	return &Scanner{inventory: inventory, opts: opts}
}

// Calculate runs the selected extractors over every relevant hive and
// aggregates the results. Unreadable hives are counted and skipped; the
// only hard error is an unresolvable root for an explicitly requested
// hive offset.
func (s *Scanner) Calculate(hives []HiveInfo) (*Report, error) {
	report := &Report{AppInit: AppInitEntry{DLLPaths: []string{}}}
	categories := s.categorySet()

	// Multiple hive-list entries may reference the same physical hive;
	// process each storage offset exactly once.
	seen := make(map[uint64]bool)

	for _, hive := range hives {
		if seen[hive.Offset] {
			continue
		}
		seen[hive.Offset] = true

		if s.opts.HiveOffsetSet && hive.Offset != s.opts.HiveOffset {
			continue
		}

		if hive.Root == nil {
			if s.opts.HiveOffsetSet {
				return report, fmt.Errorf("unable to find root key for hive at offset %#x: is the hive offset correct?", hive.Offset)
			}
			log.Debug().Str("hive", hive.Name).Uint64("offset", hive.Offset).Msg("skipping hive with unresolvable root")
			report.HivesSkipped++
			continue
		}

		class := ClassifyHive(hive.Name)
		if class == HiveIrrelevant {
			report.HivesSkipped++
			continue
		}
		report.HivesScanned++
		log.Debug().Str("hive", hive.Name).Str("class", class.String()).Msg("scanning hive")

		switch class {
		case HiveNTUser:
			if categories[CategoryAutoruns] {
				s.appendAutoruns(report, hive, ntuserRunKeyPaths)
			}
		case HiveSoftware:
			if categories[CategoryAutoruns] {
				s.appendAutoruns(report, hive, softwareRunKeyPaths)
			}
			if categories[CategoryAppInit] {
				appinit := s.scanAppInit(hive.Root)
				report.AppInit.DLLPaths = append(report.AppInit.DLLPaths, appinit.DLLPaths...)
			}
			if categories[CategoryWinlogon] {
				report.Winlogon = append(report.Winlogon, s.scanWinlogon(hive.Root)...)
				report.WinlogonRegistrations = append(report.WinlogonRegistrations, s.scanWinlogonNotify(hive.Root)...)
			}
		case HiveSystem:
			if categories[CategoryServices] {
				report.Services = append(report.Services, s.scanServices(hive.Root)...)
			}
		}
	}

	return report, nil
}

// appendAutoruns scans the run-key list (plus the operator's extra key, if
// any) and records the per-hive group when anything was found.
func (s *Scanner) appendAutoruns(report *Report, hive HiveInfo, paths []string) {
	if s.opts.ExtraKey != "" {
		paths = append(append([]string{}, paths...), s.opts.ExtraKey)
	}
	groups := s.scanRunKeys(hive.Root, paths)
	if len(groups) == 0 {
		return
	}
	report.Autoruns = append(report.Autoruns, HiveAutoruns{
		HiveName: hive.Name,
		Groups:   groups,
	})
}

// categorySet expands Options.Categories into a membership set, defaulting
// to all categories.
func (s *Scanner) categorySet() map[string]bool {
	set := make(map[string]bool, len(AllCategories))
	if len(s.opts.Categories) == 0 {
		for _, c := range AllCategories {
			set[c] = true
		}
		return set
	}
	for _, c := range s.opts.Categories {
		set[c] = true
	}
	return set
}
