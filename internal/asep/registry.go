// Package asep implements detection of registry-based Auto-Start
// Extensibility Points (run keys, services, AppInit_DLLs, Winlogon hooks)
// and correlates each discovered entry with the processes found in a
// memory-snapshot process inventory.
package asep

import (
	"fmt"
	"strings"
	"time"
)

// Key is a read-only handle to a parsed registry key. Implementations are
// provided by the snapshot substrate; the scanner never mutates a key.
type Key interface {
	Name() string
	LastWriteTime() time.Time
	Values() []Value
	Subkeys() []Key
	// Subpath resolves a backslash-separated relative path below this key,
	// matching component names case-insensitively. Returns nil if any
	// component is absent.
	Subpath(path string) Key
}

// Value is a single named registry value.
type Value interface {
	Name() string
	Data() ValueData
}

// ValueKind tags the shape of a registry value's data.
type ValueKind int

const (
	ValueText ValueKind = iota
	ValueBinary
	ValueTextList
)

// ValueData is the tagged union over the three value shapes the scanner
// understands: a string, a raw byte blob, or a multi-string list.
type ValueData struct {
	Kind ValueKind
	Text string
	List []string
	Raw  []byte
}

// TextValue wraps a string as ValueData.
func TextValue(s string) ValueData {
	return ValueData{Kind: ValueText, Text: s}
}

// BinaryValue wraps a raw blob as ValueData.
func BinaryValue(b []byte) ValueData {
	return ValueData{Kind: ValueBinary, Raw: b}
}

// TextListValue wraps a multi-string list as ValueData.
func TextListValue(list []string) ValueData {
	return ValueData{Kind: ValueTextList, List: list}
}

// Render produces the display form of the data: text as-is, lists joined
// with spaces, binary blobs as a hex dump.
func (d ValueData) Render() string {
	switch d.Kind {
	case ValueText:
		return d.Text
	case ValueTextList:
		return strings.Join(d.List, " ")
	default:
		return hexDump(d.Raw)
	}
}

// hexDump formats a blob as offset / hex / ASCII lines, 16 bytes per row.
func hexDump(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var b strings.Builder
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		var hexPart strings.Builder
		var asciiPart strings.Builder
		for _, c := range row {
			fmt.Fprintf(&hexPart, "%02x ", c)
			if c >= 0x20 && c <= 0x7e {
				asciiPart.WriteByte(c)
			} else {
				asciiPart.WriteByte('.')
			}
		}
		fmt.Fprintf(&b, "\n0x%08x  %-48s  %s", off, hexPart.String(), asciiPart.String())
	}
	return b.String()
}

// valueMap collects a key's values by name, mirroring how each extractor
// looks entries up. Later duplicates win, which cannot happen in a
// well-formed hive.
func valueMap(key Key) map[string]ValueData {
	m := make(map[string]ValueData)
	for _, v := range key.Values() {
		m[v.Name()] = v.Data()
	}
	return m
}

// lookupFold finds a value by case-insensitive name.
func lookupFold(m map[string]ValueData, name string) (ValueData, bool) {
	for k, v := range m {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return ValueData{}, false
}

// stripNULs removes embedded NUL characters left over from UTF-16 decoding.
func stripNULs(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
