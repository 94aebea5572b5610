//go:build linux

package process

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Modules enumerates the images mapped by the target process by parsing
// /proc/<pid>/maps. The mappings of each file are folded into one Module
// whose Base is the lowest mapped address and whose Size spans through the
// end of the highest mapping. Anonymous mappings and pseudo entries such as
// [heap] and [stack] are not modules and are skipped. The maps file is parsed
// fresh on every call.
func (p *Process) Modules() ([]Module, error) {
	if _, err := p.handle(); err != nil {
		return nil, err
	}

	file, err := os.Open(fmt.Sprintf("/proc/%d/maps", p.pid))
	if err != nil {
		if errors.Is(err, unix.ENOENT) || errors.Is(err, unix.ESRCH) {
			return nil, fmt.Errorf("%w: pid %d exited", ErrModuleEnumeration, p.pid)
		}
		return nil, fmt.Errorf("%w: pid %d: %v", ErrModuleEnumeration, p.pid, err)
	}
	defer file.Close()

	var (
		mods  []Module
		index = make(map[string]int)
	)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue // anonymous mapping, no path column
		}

		// The path column is padded with spaces, so take everything from the
		// first slash. Bracketed pseudo paths never contain one.
		slash := strings.IndexByte(line, '/')
		if slash < 0 {
			continue
		}
		path := strings.TrimSuffix(line[slash:], " (deleted)")

		// Parse address range (e.g., "00400000-0040b000")
		addrRange := strings.Split(fields[0], "-")
		if len(addrRange) != 2 {
			continue
		}
		start, err := strconv.ParseUint(addrRange[0], 16, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseUint(addrRange[1], 16, 64)
		if err != nil {
			continue
		}

		if i, ok := index[path]; ok {
			if end > uint64(mods[i].Base)+mods[i].Size {
				mods[i].Size = end - uint64(mods[i].Base)
			}
			continue
		}

		index[path] = len(mods)
		mods = append(mods, Module{
			Name: filepath.Base(path),
			Path: path,
			Base: Address(start),
			Size: end - start,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: pid %d: %v", ErrModuleEnumeration, p.pid, err)
	}

	return mods, nil
}
