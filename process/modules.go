package process

import (
	"fmt"
	"strings"
)

// BaseAddress returns the load address of the named module in the target
// process. The name is the image file name including its extension, such as
// "client.dll" or "libc.so.6", and is compared case-insensitively against the
// file name of every loaded module. Partial names do not match. When several
// modules share a name the first one in load order wins.
//
// The module list is enumerated fresh on every call; modules loaded or
// unloaded by the target between calls are observed, at the cost of one
// enumeration per lookup.
func (p *Process) BaseAddress(name string) (Address, error) {
	mods, err := p.Modules()
	if err != nil {
		return 0, err
	}

	for _, m := range mods {
		if strings.EqualFold(m.Name, name) {
			return m.Base, nil
		}
	}

	p.log.Debugln("no module named", name, "among", len(mods), "loaded modules")
	return 0, fmt.Errorf("%w: %q", ErrModuleNotFound, name)
}

// Module returns the full record of the named module, matched with the same
// rules as BaseAddress.
func (p *Process) Module(name string) (Module, error) {
	mods, err := p.Modules()
	if err != nil {
		return Module{}, err
	}

	for _, m := range mods {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return Module{}, fmt.Errorf("%w: %q", ErrModuleNotFound, name)
}
