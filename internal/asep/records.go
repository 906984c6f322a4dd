package asep

import "time"

// RunEntry is one value under a Run/RunOnce-style key: the value name, the
// sanitized target path it launches, and the correlated PIDs.
type RunEntry struct {
	ValueName string
	Target    string
	PIDs      []int
}

// RunKeyGroup collects the entries of one existing run key, stamped with the
// key's last write time.
type RunKeyGroup struct {
	KeyPath       string
	LastWriteTime time.Time
	Entries       []RunEntry
}

// HiveAutoruns groups run-key results per hive, preserving scan order.
type HiveAutoruns struct {
	HiveName string
	Groups   []RunKeyGroup
}

// ServiceEntry is an autostart service or driver. When the service runs
// under a shared svchost and declares a ServiceDll, LoadedEntry names that
// DLL (with the ServiceMain function appended when registered) and
// LastWriteTime reflects the Parameters subkey instead of the service key.
type ServiceEntry struct {
	ServiceName   string
	DisplayName   string
	StartupKind   string
	ServiceKind   string
	ImagePath     string
	LoadedEntry   string
	LastWriteTime time.Time
	PIDs          []int
}

// AppInitEntry carries the DLL list from AppInit_DLLs. The DLLs are loaded
// into every user-mode process rather than tied to one executable, so no
// per-path PID correlation is reported.
type AppInitEntry struct {
	DLLPaths []string
}

// WinlogonDefaultEntry is one well-known Winlogon value, paired with the OS
// default it would normally hold for comparison.
type WinlogonDefaultEntry struct {
	ValueName     string
	Target        string
	DefaultName   string
	LastWriteTime time.Time
	PIDs          []int
}

// HookedEvent is one (event, handler function) registration of a Winlogon
// notification package.
type HookedEvent struct {
	Event   string
	Handler string
}

// WinlogonNotifyEntry is one registered Winlogon notification package.
type WinlogonNotifyEntry struct {
	DLLPath       string
	HookedEvents  []HookedEvent
	LastWriteTime time.Time
	PIDs          []int
}

// Report is the aggregate result of one scan pass. All records are created
// during Calculate and are immutable afterwards.
type Report struct {
	Autoruns              []HiveAutoruns
	Services              []ServiceEntry
	AppInit               AppInitEntry
	Winlogon              []WinlogonDefaultEntry
	WinlogonRegistrations []WinlogonNotifyEntry

	// HivesScanned counts distinct hives that were classified and scanned;
	// HivesSkipped counts hives with an unresolvable root or an irrelevant
	// name.
	HivesScanned int
	HivesSkipped int
}
