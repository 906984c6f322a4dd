package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Velocidex/ordereddict"

	"asepscan/internal/asep"
)

// JSON writes the report as a flat array of uniform rows, one per ASEP
// entry. Rows are built as ordered dicts so the column order (Executable,
// Source, LastWriteTime, Details, PIDs) survives marshaling.
func JSON(w io.Writer, r *asep.Report) error {
	rows := make([]*ordereddict.Dict, 0)

	for _, entry := range r.WinlogonRegistrations {
		handlers := make([]string, len(entry.HookedEvents))
		for i, hook := range entry.HookedEvents {
			handlers[i] = hook.Handler
		}
		rows = append(rows, row(entry.DLLPath, "Winlogon (Notify)", entry.LastWriteTime,
			fmt.Sprintf("Hooks: %s", strings.Join(handlers, ", ")), entry.PIDs))
	}

	for _, entry := range r.Winlogon {
		rows = append(rows, row(entry.Target, fmt.Sprintf("Winlogon (%s)", entry.ValueName),
			entry.LastWriteTime, fmt.Sprintf("Default value: %s", entry.DefaultName), entry.PIDs))
	}

	for _, hive := range r.Autoruns {
		for _, group := range hive.Groups {
			source := fmt.Sprintf("%s (%s)", hiveSource(hive.HiveName), trailingComponent(group.KeyPath))
			for _, entry := range group.Entries {
				rows = append(rows, row(entry.Target, source, group.LastWriteTime, entry.ValueName, entry.PIDs))
			}
		}
	}

	for _, svc := range r.Services {
		name := svc.ServiceName
		if svc.LoadedEntry != "" {
			name += fmt.Sprintf(" (Loads: %s)", svc.LoadedEntry)
		}
		details := fmt.Sprintf("%s - %s (%s - %s)", name, svc.DisplayName, svc.ServiceKind, svc.StartupKind)
		rows = append(rows, row(svc.ImagePath, "Services", svc.LastWriteTime, details, svc.PIDs))
	}

	for _, dll := range r.AppInit.DLLPaths {
		rows = append(rows, row(dll, "AppInit_DLLs", time.Time{}, "", []int{}))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func row(executable, source string, lastWrite time.Time, details string, pids []int) *ordereddict.Dict {
	ts := ""
	if !lastWrite.IsZero() {
		ts = lastWrite.UTC().Format(time.RFC3339)
	}
	if pids == nil {
		pids = []int{}
	}
	return ordereddict.NewDict().
		Set("Executable", executable).
		Set("Source", source).
		Set("LastWriteTime", ts).
		Set("Details", details).
		Set("PIDs", pids)
}

// hiveSource shortens a hive display name to its filename, keeping the
// owning directory for NTUSER.DAT hives so different users stay
// distinguishable.
func hiveSource(name string) string {
	parts := strings.Split(name, `\`)
	tail := parts[len(parts)-1]
	if strings.EqualFold(tail, "NTUSER.DAT") && len(parts) >= 2 {
		return parts[len(parts)-2] + `\` + tail
	}
	return tail
}

func trailingComponent(path string) string {
	if i := strings.LastIndex(path, `\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
