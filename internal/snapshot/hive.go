// Package snapshot adapts a memory-snapshot export (carved registry hive
// files plus a process listing) into the read-only substrate the asep
// scanner consumes.
package snapshot

import (
	"fmt"
	"os"
	"strings"
	"time"

	"www.velocidex.com/golang/regparser"

	"asepscan/internal/asep"
)

// Hive is one parsed registry hive backed by an open file. The underlying
// file must stay open while keys from the hive are in use; regparser reads
// cell data lazily.
type Hive struct {
	file *os.File
	root asep.Key
}

// Open parses the hive file at path. A file that is readable but has no
// resolvable root key yields a Hive whose Root() is nil, so the caller can
// apply the soft-failure policy for hive fragments.
func Open(path string) (*Hive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hive file %s: %w", path, err)
	}

	registry, err := regparser.NewRegistry(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to parse hive %s: %w", path, err)
	}

	var root asep.Key
	if node := registry.OpenKey("/"); node != nil {
		root = &regKey{node: node}
	}
	return &Hive{file: f, root: root}, nil
}

// Root returns the hive's root key, or nil when it could not be resolved.
func (h *Hive) Root() asep.Key {
	return h.root
}

// Close releases the underlying file. Keys obtained from the hive must not
// be used afterwards.
func (h *Hive) Close() error {
	return h.file.Close()
}

// regKey adapts a regparser key node to asep.Key.
type regKey struct {
	node *regparser.CM_KEY_NODE
}

func (k *regKey) Name() string {
	return k.node.Name()
}

func (k *regKey) LastWriteTime() time.Time {
	return k.node.LastWriteTime().Time
}

func (k *regKey) Values() []asep.Value {
	var values []asep.Value
	for _, v := range k.node.Values() {
		values = append(values, &regValue{value: v})
	}
	return values
}

func (k *regKey) Subkeys() []asep.Key {
	var keys []asep.Key
	for _, sub := range k.node.Subkeys() {
		keys = append(keys, &regKey{node: sub})
	}
	return keys
}

// Subpath walks the backslash-separated path below this key, comparing
// component names case-insensitively the way the registry does.
func (k *regKey) Subpath(path string) asep.Key {
	node := k.node
	for _, component := range strings.Split(path, `\`) {
		if component == "" {
			continue
		}
		var next *regparser.CM_KEY_NODE
		for _, sub := range node.Subkeys() {
			if strings.EqualFold(sub.Name(), component) {
				next = sub
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return &regKey{node: node}
}

// regValue adapts a regparser value to asep.Value.
type regValue struct {
	value *regparser.CM_KEY_VALUE
}

func (v *regValue) Name() string {
	return v.value.ValueName()
}

func (v *regValue) Data() asep.ValueData {
	return convertValueData(v.value.ValueData())
}
