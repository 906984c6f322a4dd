package asep

import "strings"

// HiveClass identifies which mechanism keys apply to a discovered hive.
type HiveClass int

const (
	HiveIrrelevant HiveClass = iota
	HiveNTUser
	HiveSoftware
	HiveSystem
)

func (c HiveClass) String() string {
	switch c {
	case HiveNTUser:
		return "ntuser"
	case HiveSoftware:
		return "software"
	case HiveSystem:
		return "system"
	default:
		return "irrelevant"
	}
}

// ClassifyHive categorizes a hive by the lower-cased trailing component of
// its display name. The function is total: any name maps to exactly one
// class, with unrecognized names falling through to HiveIrrelevant.
func ClassifyHive(name string) HiveClass {
	tail := strings.ToLower(trailingComponent(name))
	switch {
	case strings.Contains(tail, "ntuser.dat"):
		return HiveNTUser
	case strings.Contains(tail, "software"):
		return HiveSoftware
	case strings.Contains(tail, "system"):
		return HiveSystem
	default:
		return HiveIrrelevant
	}
}

// trailingComponent returns the last backslash-separated component of a
// Windows path, or the whole string if it has no separator.
func trailingComponent(path string) string {
	if i := strings.LastIndex(path, `\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
