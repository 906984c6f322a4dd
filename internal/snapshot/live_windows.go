//go:build windows

package snapshot

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"asepscan/internal/asep"
)

// LiveProcesses builds a process listing from the running system via the
// Toolhelp snapshot API. This supports the workflow where hives were dumped
// from the local machine and should be correlated against what is running
// now. Processes whose modules cannot be enumerated (protected or exited
// between snapshots) are skipped, matching the treatment of processes with
// an inaccessible environment block in an image.
func LiveProcesses() ([]asep.ProcessRecord, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot process list: %w", err)
	}
	defer windows.CloseHandle(snap)

	var pe windows.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))
	if err := windows.Process32First(snap, &pe); err != nil {
		return nil, fmt.Errorf("failed to read first process entry: %w", err)
	}

	var records []asep.ProcessRecord
	for {
		pid := pe.ProcessID
		if pid != 0 {
			modules, err := processModules(pid)
			if err == nil {
				records = append(records, asep.ProcessRecord{
					PID:         int(pid),
					CommandLine: processImagePath(pid),
					Modules:     modules,
				})
			}
		}

		if err := windows.Process32Next(snap, &pe); err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				break
			}
			return nil, fmt.Errorf("failed to advance process snapshot: %w", err)
		}
	}
	return records, nil
}

// processModules lists the full paths of the modules loaded in pid.
func processModules(pid uint32) ([]string, error) {
	snap, err := windows.CreateToolhelp32Snapshot(
		windows.TH32CS_SNAPMODULE|windows.TH32CS_SNAPMODULE32, pid)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(snap)

	var me windows.ModuleEntry32
	me.Size = uint32(unsafe.Sizeof(me))
	if err := windows.Module32First(snap, &me); err != nil {
		return nil, err
	}

	var modules []string
	for {
		modules = append(modules, windows.UTF16ToString(me.ExePath[:]))
		if err := windows.Module32Next(snap, &me); err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				break
			}
			return nil, err
		}
	}
	return modules, nil
}

// processImagePath resolves the executable path for pid, standing in for
// the command line which the Toolhelp API does not expose. An empty result
// lets the inventory substitute its sentinel.
func processImagePath(pid uint32) string {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	return windows.UTF16ToString(buf[:size])
}
