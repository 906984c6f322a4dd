package asep

import "strings"

const (
	winlogonKeyPath       = `Microsoft\Windows NT\CurrentVersion\Winlogon`
	winlogonNotifyKeyPath = winlogonKeyPath + `\Notify`
)

// Well-known Winlogon values and the defaults a stock installation holds.
// A value pointing anywhere else is a classic persistence spot.
var winlogonKnownValues = map[string]string{
	"Userinit": "userinit.exe",
	"VmApplet": `rundll32 shell32,Control_RunDLL "sysdm.cpl"`,
	"Shell":    "Explorer.exe",
	"TaskMan":  "Taskmgr.exe",
	"System":   "lsass.exe",
}

// Notification events a Winlogon Notify package may hook. Notify packages
// are a pre-Vista mechanism; their presence on newer systems is itself
// suspicious.
var winlogonNotifyEvents = []string{
	"Lock",
	"Logoff",
	"Logon",
	"Shutdown",
	"StartScreenSaver",
	"StartShell",
	"Startup",
	"StopScreenSaver",
	"Unlock",
}

// Notify DLLs shipped with Windows, suppressed unless verbose.
var winlogonKnownNotifyDLLs = map[string]bool{
	"crypt32.dll":  true,
	"cryptnet.dll": true,
	"cscdll.dll":   true,
	"dimsntfy.dll": true,
	"sclgntfy.dll": true,
	"wlnotify.dll": true,
	"wzcdlg.dll":   true,
}

// scanWinlogon reads the direct values of the Winlogon key and reports the
// well-known ones alongside their stock defaults.
func (s *Scanner) scanWinlogon(root Key) []WinlogonDefaultEntry {
	key := root.Subpath(winlogonKeyPath)
	if key == nil {
		return nil
	}

	var entries []WinlogonDefaultEntry
	lastWrite := key.LastWriteTime()
	for _, v := range key.Values() {
		defaultName, known := winlogonKnownValues[v.Name()]
		if !known {
			continue
		}
		data := v.Data().Render()
		entries = append(entries, WinlogonDefaultEntry{
			ValueName:     v.Name(),
			Target:        stripNULs(data),
			DefaultName:   defaultName,
			LastWriteTime: lastWrite,
			PIDs:          s.inventory.FindPIDs(data),
		})
	}
	return entries
}

// scanWinlogonNotify enumerates Winlogon\Notify subkeys, one per registered
// notification package. Known OS-shipped packages are dropped in
// non-verbose mode.
func (s *Scanner) scanWinlogonNotify(root Key) []WinlogonNotifyEntry {
	key := root.Subpath(winlogonNotifyKeyPath)
	if key == nil {
		return nil
	}

	var entries []WinlogonNotifyEntry
	for _, sub := range key.Subkeys() {
		entry := s.parseNotifyKey(sub)
		if entry == nil {
			continue
		}
		if !s.opts.Verbose {
			dll := strings.ToLower(trailingComponent(entry.DLLPath))
			if winlogonKnownNotifyDLLs[dll] {
				continue
			}
		}
		entries = append(entries, *entry)
	}
	return entries
}

// parseNotifyKey extracts one notification package. The DLL name value is
// matched case-insensitively since its casing is inconsistent across
// Windows versions; a subkey without one is skipped.
func (s *Scanner) parseNotifyKey(key Key) *WinlogonNotifyEntry {
	values := valueMap(key)

	dllName, ok := lookupFold(values, "DllName")
	if !ok {
		return nil
	}
	dll := dllName.Render()

	var events []HookedEvent
	for _, event := range winlogonNotifyEvents {
		if handler, ok := values[event]; ok {
			events = append(events, HookedEvent{
				Event:   event,
				Handler: stripNULs(handler.Render()),
			})
		}
	}

	return &WinlogonNotifyEntry{
		DLLPath:       stripNULs(dll),
		HookedEvents:  events,
		LastWriteTime: key.LastWriteTime(),
		PIDs:          s.inventory.FindPIDs(dll),
	}
}
