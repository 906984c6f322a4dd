package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"asepscan/internal/asep"
)

// processRecord is one entry of processes.json, the pslist+dlllist style
// export accompanying the carved hives. A null command_line means the
// process parameters were not recoverable from the image.
type processRecord struct {
	PID         int      `json:"pid"`
	CommandLine *string  `json:"command_line"`
	Modules     []string `json:"modules"`
}

// LoadProcesses reads a process listing file into the scanner's record
// shape, substituting the sentinel strings for unrecoverable fields.
func LoadProcesses(path string) ([]asep.ProcessRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read process listing: %w", err)
	}

	var entries []processRecord
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse process listing %s: %w", path, err)
	}

	records := make([]asep.ProcessRecord, 0, len(entries))
	for i, e := range entries {
		if e.PID <= 0 {
			return nil, fmt.Errorf("process listing %s: entry %d has invalid pid %d", path, i, e.PID)
		}
		cmdline := asep.NoCmdline
		if e.CommandLine != nil && *e.CommandLine != "" {
			cmdline = *e.CommandLine
		}
		records = append(records, asep.ProcessRecord{
			PID:         e.PID,
			CommandLine: cmdline,
			Modules:     e.Modules,
		})
	}
	return records, nil
}
