package asep

import (
	"strings"
	"time"
)

// fakeKey is an in-memory Key implementation for extractor tests.
type fakeKey struct {
	name    string
	ts      time.Time
	values  []Value
	subkeys []*fakeKey
}

func newFakeKey(name string, ts time.Time) *fakeKey {
	return &fakeKey{name: name, ts: ts}
}

func (k *fakeKey) withValue(name string, data ValueData) *fakeKey {
	k.values = append(k.values, fakeValue{name: name, data: data})
	return k
}

func (k *fakeKey) withSubkey(sub *fakeKey) *fakeKey {
	k.subkeys = append(k.subkeys, sub)
	return k
}

// withSubpath creates the chain of keys for a backslash-separated path and
// returns the leaf, reusing components that already exist.
func (k *fakeKey) withSubpath(path string, ts time.Time) *fakeKey {
	node := k
	for _, component := range strings.Split(path, `\`) {
		var next *fakeKey
		for _, sub := range node.subkeys {
			if strings.EqualFold(sub.name, component) {
				next = sub
				break
			}
		}
		if next == nil {
			next = newFakeKey(component, ts)
			node.subkeys = append(node.subkeys, next)
		}
		node = next
	}
	return node
}

func (k *fakeKey) Name() string             { return k.name }
func (k *fakeKey) LastWriteTime() time.Time { return k.ts }

func (k *fakeKey) Values() []Value {
	return k.values
}

func (k *fakeKey) Subkeys() []Key {
	keys := make([]Key, len(k.subkeys))
	for i, sub := range k.subkeys {
		keys[i] = sub
	}
	return keys
}

func (k *fakeKey) Subpath(path string) Key {
	node := k
	for _, component := range strings.Split(path, `\`) {
		if component == "" {
			continue
		}
		var next *fakeKey
		for _, sub := range node.subkeys {
			if strings.EqualFold(sub.name, component) {
				next = sub
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}

type fakeValue struct {
	name string
	data ValueData
}

func (v fakeValue) Name() string    { return v.name }
func (v fakeValue) Data() ValueData { return v.data }
