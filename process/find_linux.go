//go:build linux

package process

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// FindByName returns every process whose comm or exe basename equals name,
// sorted by pid. The match is case-sensitive like pidof; use FindByName with
// each case variant if you need anything looser. The calling process itself
// is never included.
func FindByName(name string) ([]ProcessInfo, error) {
	if name == "" {
		return nil, errors.New("empty process name")
	}

	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("read /proc: %w", err)
	}

	self := os.Getpid()
	var out []ProcessInfo

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue // not a pid dir
		}
		if pid == self {
			continue
		}

		comm, _ := os.ReadFile(filepath.Join("/proc", e.Name(), "comm"))
		comm = trimTrailingSpace(comm)

		// Resolving /proc/<pid>/exe may fail for zombies or foreign users
		exe, _ := os.Readlink(filepath.Join("/proc", e.Name(), "exe"))

		switch {
		case string(comm) == name:
			out = append(out, ProcessInfo{PID: pid, Name: string(comm), Exe: exe})
		case exe != "" && filepath.Base(exe) == name:
			out = append(out, ProcessInfo{PID: pid, Name: filepath.Base(exe), Exe: exe})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })

	return out, nil
}

// trimTrailingSpace trims the newline /proc/<pid>/comm carries
func trimTrailingSpace(b []byte) []byte {
	for len(b) > 0 {
		switch b[len(b)-1] {
		case '\n', '\r', ' ', '\t':
			b = b[:len(b)-1]
		default:
			return b
		}
	}
	return b
}
