package asep

// Historically known Run/RunOnce/RunServices key paths under the machine
// SOFTWARE hive, including the 32-bit-on-64-bit mirrors and the Terminal
// Server install-mode shadow tree.
var softwareRunKeyPaths = []string{
	`Microsoft\Windows\CurrentVersion\Run`,
	`Microsoft\Windows\CurrentVersion\RunOnce`,
	`Microsoft\Windows\CurrentVersion\RunServices`,
	`Microsoft\Windows\CurrentVersion\Policies\Explorer\Run`,
	`Wow6432Node\Microsoft\Windows\CurrentVersion\Run`,
	`Wow6432Node\Microsoft\Windows\CurrentVersion\RunOnce`,
	`Wow6432Node\Microsoft\Windows\CurrentVersion\Policies\Explorer\Run`,
	`Microsoft\Windows NT\CurrentVersion\Terminal Server\Install\Software\Microsoft\Windows\CurrentVersion\Run`,
	`Microsoft\Windows NT\CurrentVersion\Terminal Server\Install\Software\Microsoft\Windows\CurrentVersion\RunOnce`,
}

// The per-user equivalents rooted in NTUSER.DAT.
var ntuserRunKeyPaths = []string{
	`Software\Microsoft\Windows\CurrentVersion\Run`,
	`Software\Microsoft\Windows\CurrentVersion\RunOnce`,
	`Software\Microsoft\Windows\CurrentVersion\RunServices`,
	`Software\Microsoft\Windows\CurrentVersion\RunServicesOnce`,
	`Software\Microsoft\Windows\CurrentVersion\Policies\Explorer\Run`,
	`Software\Microsoft\Windows NT\CurrentVersion\Terminal Server\Install\Software\Microsoft\Windows\CurrentVersion\Run`,
	`Software\Microsoft\Windows NT\CurrentVersion\Terminal Server\Install\Software\Microsoft\Windows\CurrentVersion\RunOnce`,
	`Software\Microsoft\Windows NT\CurrentVersion\Run`,
	`Software\Wow6432Node\Microsoft\Windows\CurrentVersion\Policies\Explorer\Run`,
	`Software\Wow6432Node\Microsoft\Windows\CurrentVersion\Run`,
}

// scanRunKeys probes each candidate path below root and parses the keys
// that exist. Missing keys are the common case and are skipped silently.
func (s *Scanner) scanRunKeys(root Key, paths []string) []RunKeyGroup {
	groups := []RunKeyGroup{}
	for _, path := range paths {
		key := root.Subpath(path)
		if key == nil {
			continue
		}
		entries := s.parseRunKey(key)
		if len(entries) == 0 {
			continue
		}
		groups = append(groups, RunKeyGroup{
			KeyPath:       path,
			LastWriteTime: key.LastWriteTime(),
			Entries:       entries,
		})
	}
	return groups
}

// parseRunKey emits one RunEntry per value whose data is neither empty nor
// a lone NUL byte.
func (s *Scanner) parseRunKey(key Key) []RunEntry {
	var entries []RunEntry
	for _, v := range key.Values() {
		data := v.Data().Render()
		if data == "" || data == "\x00" {
			continue
		}
		entries = append(entries, RunEntry{
			ValueName: v.Name(),
			Target:    SanitizePath(data),
			PIDs:      s.inventory.FindPIDs(data),
		})
	}
	return entries
}
