// Package render turns a scan report into operator-facing text or JSON.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"asepscan/internal/asep"
)

// Text writes the sectioned plain-text report: autoruns grouped by hive and
// key, then services, Winlogon values, Winlogon Notify registrations, and
// the AppInit DLL list. Empty sections are omitted.
func Text(w io.Writer, r *asep.Report) error {
	var b strings.Builder

	if len(r.Autoruns) > 0 {
		writeHeader(&b, "Autoruns")
		for _, hive := range r.Autoruns {
			fmt.Fprintf(&b, "Hive: %s\n", hive.HiveName)
			for _, group := range hive.Groups {
				fmt.Fprintf(&b, "    %s (Last modified: %s)\n", group.KeyPath, formatTime(group.LastWriteTime))
				for _, entry := range group.Entries {
					fmt.Fprintf(&b, "        %-30s : %s (PIDs: %s)\n", entry.ValueName, entry.Target, formatPIDs(entry.PIDs))
				}
			}
			b.WriteString("\n")
		}
	}

	if len(r.Services) > 0 {
		writeHeader(&b, "Services")
		for _, svc := range r.Services {
			fmt.Fprintf(&b, "Service: %s (%s) - %s, %s\n", svc.ServiceName, svc.DisplayName, svc.ServiceKind, svc.StartupKind)
			fmt.Fprintf(&b, "    Image path: %s (Last modified: %s)\n", svc.ImagePath, formatTime(svc.LastWriteTime))
			fmt.Fprintf(&b, "    PIDs: %s\n", formatPIDs(svc.PIDs))
			if svc.LoadedEntry != "" {
				fmt.Fprintf(&b, "    Loads: %s\n", svc.LoadedEntry)
			}
			b.WriteString("\n")
		}
	}

	if len(r.Winlogon) > 0 {
		writeHeader(&b, "Winlogon")
		for _, entry := range r.Winlogon {
			fmt.Fprintf(&b, "%s: %s (default: %s)\n", entry.ValueName, entry.Target, entry.DefaultName)
			fmt.Fprintf(&b, "    PIDs: %s\n", formatPIDs(entry.PIDs))
			fmt.Fprintf(&b, "    Last write time: %s\n", formatTime(entry.LastWriteTime))
			b.WriteString("\n")
		}
	}

	if len(r.WinlogonRegistrations) > 0 {
		writeHeader(&b, "Winlogon Notify registrations")
		for _, entry := range r.WinlogonRegistrations {
			fmt.Fprintf(&b, "%s (Last write time: %s)\n", entry.DLLPath, formatTime(entry.LastWriteTime))
			fmt.Fprintf(&b, "    PIDs: %s\n", formatPIDs(entry.PIDs))
			b.WriteString("    Hooks: \n")
			for _, hook := range entry.HookedEvents {
				fmt.Fprintf(&b, "        %-20s %s\n", hook.Event, hook.Handler)
			}
			b.WriteString("\n")
		}
	}

	if len(r.AppInit.DLLPaths) > 0 {
		writeHeader(&b, "AppInit DLLs")
		for _, dll := range r.AppInit.DLLPaths {
			fmt.Fprintf(&b, "%s\n", dll)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeHeader(b *strings.Builder, title string) {
	b.WriteString("\n\n")
	b.WriteString(title)
	b.WriteString(" ")
	b.WriteString(strings.Repeat("=", 50-len(title)-1))
	b.WriteString("\n\n")
}

// formatPIDs joins a PID set for display, with "-" standing for no match.
func formatPIDs(pids []int) string {
	if len(pids) == 0 {
		return "-"
	}
	parts := make([]string, len(pids))
	for i, pid := range pids {
		parts[i] = strconv.Itoa(pid)
	}
	return strings.Join(parts, ", ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
