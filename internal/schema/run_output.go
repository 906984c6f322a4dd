// Package schema defines the data structures for asepscan's output formats.
package schema

import (
	"time"

	"asepscan/internal/asep"
)

// RunOutput represents the complete JSON summary printed after a scan
// command execution.
type RunOutput struct {
	Command          string   `json:"command"`
	SnapshotDir      string   `json:"snapshot_dir"`
	Categories       []string `json:"categories"`
	Verbose          bool     `json:"verbose"`
	LiveProcesses    bool     `json:"live_processes"`
	ProcessCount     int      `json:"process_count"`
	HivesListed      int      `json:"hives_listed"`
	HivesScanned     int      `json:"hives_scanned"`
	HivesSkipped     int      `json:"hives_skipped"`
	RunKeyEntries    int      `json:"run_key_entries"`
	ServiceEntries   int      `json:"service_entries"`
	AppInitDLLs      int      `json:"appinit_dlls"`
	WinlogonEntries  int      `json:"winlogon_entries"`
	NotifyPackages   int      `json:"notify_packages"`
	ReportPath       string   `json:"report_path"`
	Encrypted        bool     `json:"encrypted"`
	AgeRecipientSet  bool     `json:"age_recipient_set"`
	TimestampUTC     string   `json:"timestamp_utc"`

	// Set only when the scan was narrowed by the operator.
	HiveOffset string `json:"hive_offset,omitempty"`
	ExtraKey   string `json:"extra_key,omitempty"`
}

// NewRunOutput summarizes one scan over its report and inventory.
func NewRunOutput(snapshotDir string, categories []string, verbose, live bool,
	processCount, hivesListed int, report *asep.Report, timestamp time.Time) *RunOutput {

	runEntries := 0
	for _, hive := range report.Autoruns {
		for _, group := range hive.Groups {
			runEntries += len(group.Entries)
		}
	}

	if len(categories) == 0 {
		categories = asep.AllCategories
	}

	return &RunOutput{
		Command:         "scan",
		SnapshotDir:     snapshotDir,
		Categories:      categories,
		Verbose:         verbose,
		LiveProcesses:   live,
		ProcessCount:    processCount,
		HivesListed:     hivesListed,
		HivesScanned:    report.HivesScanned,
		HivesSkipped:    report.HivesSkipped,
		RunKeyEntries:   runEntries,
		ServiceEntries:  len(report.Services),
		AppInitDLLs:     len(report.AppInit.DLLPaths),
		WinlogonEntries: len(report.Winlogon),
		NotifyPackages:  len(report.WinlogonRegistrations),
		TimestampUTC:    timestamp.UTC().Format(time.RFC3339),
	}
}

// SetReport records where the rendered report was written.
func (ro *RunOutput) SetReport(path string, encrypted, ageRecipientSet bool) {
	ro.ReportPath = path
	ro.Encrypted = encrypted
	ro.AgeRecipientSet = ageRecipientSet
}
