//go:build windows

package process

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

// FindByName returns every process whose executable name equals name, sorted
// by pid. Image names are case-insensitive on Windows so the comparison is
// too, e.g. "notepad.exe" also matches "NOTEPAD.EXE". The calling process
// itself is never included.
func FindByName(name string) ([]ProcessInfo, error) {
	if name == "" {
		return nil, errors.New("empty process name")
	}

	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("process snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	self := os.Getpid()
	var out []ProcessInfo

	for err = windows.Process32First(snapshot, &entry); err == nil; err = windows.Process32Next(snapshot, &entry) {
		pid := int(entry.ProcessID)
		if pid == self {
			continue
		}
		if exe := windows.UTF16ToString(entry.ExeFile[:]); strings.EqualFold(exe, name) {
			out = append(out, ProcessInfo{PID: pid, Name: exe})
		}
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return nil, fmt.Errorf("process snapshot walk: %w", err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })

	return out, nil
}
