package asep

import "strings"

// appInitKeyPath holds the single AppInit_DLLs value in the SOFTWARE hive.
const appInitKeyPath = `Microsoft\Windows NT\CurrentVersion\Windows`

// scanAppInit reads AppInit_DLLs and splits the NUL-stripped string on
// spaces, preserving order. The DLLs listed here are injected into every
// process that links user32.dll, so there is no meaningful per-path PID
// correlation to report.
func (s *Scanner) scanAppInit(root Key) AppInitEntry {
	key := root.Subpath(appInitKeyPath)
	if key == nil {
		return AppInitEntry{DLLPaths: []string{}}
	}

	data, ok := lookupFold(valueMap(key), "AppInit_DLLs")
	if !ok {
		return AppInitEntry{DLLPaths: []string{}}
	}

	paths := []string{}
	for _, p := range strings.Split(stripNULs(data.Render()), " ") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return AppInitEntry{DLLPaths: paths}
}
