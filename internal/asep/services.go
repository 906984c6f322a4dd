package asep

import (
	"fmt"
	"strconv"
	"strings"
)

// Service Type bitmask combinations observed in SYSTEM hives. Unlisted
// combinations decode as "Unknown" rather than failing the entry.
var serviceTypes = map[int]string{
	0x001: "Kernel driver",
	0x002: "File system driver",
	0x004: "Arguments for adapter",
	0x008: "File system driver",
	0x010: "Own_Process",
	0x020: "Share_Process",
	0x100: "Interactive",
	0x110: "Interactive",
	0x120: "Share_process Interactive",
	-1:    "Unknown",
}

// Service Start codes. Only Boot/System/Auto (0-2) are autostart points.
var serviceStartup = map[int]string{
	0x00: "Boot Start",
	0x01: "System Start",
	0x02: "Auto Start",
	0x03: "Manual",
	0x04: "Disabled",
	-1:   "Unknown",
}

// svchostMarker in an ImagePath means the service code actually lives in
// the DLL named by Parameters\ServiceDll.
const svchostMarker = "svchost.exe -k"

// scanServices walks <ControlSet>\Services of a SYSTEM hive and returns the
// autostart services. In non-verbose mode services whose image path is
// unknown or lives in the OS system directory are dropped as noise.
func (s *Scanner) scanServices(root Key) []ServiceEntry {
	controlSet := currentControlSet(root)
	servicesKey := root.Subpath(controlSet + `\Services`)
	if servicesKey == nil {
		return nil
	}

	var entries []ServiceEntry
	for _, serviceKey := range servicesKey.Subkeys() {
		entry := s.parseServiceKey(serviceKey)
		if entry == nil {
			continue
		}
		if !s.opts.Verbose {
			if entry.ImagePath == "Unknown" || strings.Contains(strings.ToLower(entry.ImagePath), "system32") {
				continue
			}
		}
		entries = append(entries, *entry)
	}
	return entries
}

// currentControlSet resolves the active control set from the SYSTEM hive's
// Select\Current pointer, defaulting to ControlSet001 when the pointer is
// missing or malformed.
func currentControlSet(root Key) string {
	if sel := root.Subpath("Select"); sel != nil {
		if current, ok := lookupFold(valueMap(sel), "Current"); ok {
			if n, err := strconv.Atoi(stripNULs(current.Render())); err == nil && n > 0 {
				return fmt.Sprintf("ControlSet%03d", n)
			}
		}
	}
	return "ControlSet001"
}

// parseServiceKey extracts one service. Returns nil for services that are
// not set to start automatically (Manual, Disabled, or unparseable Start).
func (s *Scanner) parseServiceKey(key Key) *ServiceEntry {
	values := valueMap(key)

	displayName := stripNULs(textOr(values, "DisplayName", "Unknown"))
	imagePath := stripNULs(textOr(values, "ImagePath", "Unknown"))
	startup := intOr(values, "Start", -1)
	kind := intOr(values, "Type", -1)
	lastWrite := key.LastWriteTime()

	// Shared-host indirection: the real target is the ServiceDll registered
	// under Parameters, and the Parameters key carries the relevant
	// timestamp.
	var loadedEntry, serviceDll string
	if strings.Contains(imagePath, svchostMarker) {
		for _, sub := range key.Subkeys() {
			if sub.Name() != "Parameters" {
				continue
			}
			lastWrite = sub.LastWriteTime()
			params := valueMap(sub)
			if dll, ok := params["ServiceDll"]; ok {
				serviceDll = dll.Render()
				loadedEntry = serviceDll
				if main, ok := params["ServiceMain"]; ok && main.Render() != "" {
					loadedEntry += fmt.Sprintf(" (%s)", main.Render())
				}
				loadedEntry = stripNULs(loadedEntry)
			}
			break
		}
	}

	if startup < 0 || startup > 2 {
		return nil
	}

	correlationTarget := imagePath
	if serviceDll != "" {
		correlationTarget = serviceDll
	}

	kindLabel, ok := serviceTypes[kind]
	if !ok {
		kindLabel = "Unknown"
	}

	return &ServiceEntry{
		ServiceName:   key.Name(),
		DisplayName:   displayName,
		StartupKind:   serviceStartup[startup],
		ServiceKind:   kindLabel,
		ImagePath:     imagePath,
		LoadedEntry:   loadedEntry,
		LastWriteTime: lastWrite,
		PIDs:          s.inventory.FindPIDs(correlationTarget),
	}
}

// textOr renders a named value, falling back when absent.
func textOr(values map[string]ValueData, name, fallback string) string {
	if v, ok := values[name]; ok {
		return v.Render()
	}
	return fallback
}

// intOr parses a named value as an integer, falling back when the value is
// absent or not numeric.
func intOr(values map[string]ValueData, name string, fallback int) int {
	v, ok := values[name]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(stripNULs(v.Render())))
	if err != nil {
		return fallback
	}
	return n
}
