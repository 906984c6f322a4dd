//go:build !windows

package snapshot

import (
	"errors"

	"asepscan/internal/asep"
)

// LiveProcesses is only available on Windows; other platforms must supply a
// process listing file.
func LiveProcesses() ([]asep.ProcessRecord, error) {
	return nil, errors.New("live process inventory is only supported on windows; use --processes")
}
