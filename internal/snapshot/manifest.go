package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestFilename is the snapshot directory's index of carved hive files.
const ManifestFilename = "snapshot.json"

// ProcessesFilename is the default process listing within a snapshot
// directory.
const ProcessesFilename = "processes.json"

// HiveRef describes one registry hive carved out of the memory image: its
// original display name (e.g. \Device\HarddiskVolume1\WINDOWS\system32\
// config\software), the virtual offset the hive lived at in the image, and
// the file the hive was dumped to, relative to the snapshot directory.
type HiveRef struct {
	Name   string `json:"name"`
	Offset uint64 `json:"offset"`
	File   string `json:"file"`
}

// Manifest is the parsed snapshot.json.
type Manifest struct {
	Hives []HiveRef `json:"hives"`

	dir string
}

// LoadManifest reads and validates the snapshot manifest in dir.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFilename)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot manifest %s: %w", path, err)
	}
	if len(m.Hives) == 0 {
		return nil, fmt.Errorf("snapshot manifest %s lists no hives", path)
	}
	for i, h := range m.Hives {
		if h.File == "" {
			return nil, fmt.Errorf("snapshot manifest %s: hive %d has no file", path, i)
		}
		if h.Name == "" {
			m.Hives[i].Name = "[no name]"
		}
	}
	m.dir = dir
	return &m, nil
}

// HivePath resolves a hive's file path against the snapshot directory.
func (m *Manifest) HivePath(ref HiveRef) string {
	if filepath.IsAbs(ref.File) {
		return ref.File
	}
	return filepath.Join(m.dir, ref.File)
}
