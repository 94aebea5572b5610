//go:build windows

package process

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Modules enumerates the modules loaded in the target process. The list is
// fetched fresh on every call with the two-step size-then-fetch protocol;
// when the loader list changes size between the two steps the pair is
// retried once before giving up.
func (p *Process) Modules() ([]Module, error) {
	h, err := p.win32Handle()
	if err != nil {
		return nil, err
	}

	handles, err := p.moduleHandles(h)
	if err != nil {
		return nil, err
	}

	mods := make([]Module, 0, len(handles))
	for _, mh := range handles {
		var name [windows.MAX_PATH]uint16
		if err := windows.GetModuleBaseName(h, mh, &name[0], windows.MAX_PATH); err != nil {
			continue // module unloaded mid-walk
		}

		var path [windows.MAX_PATH]uint16
		windows.GetModuleFileNameEx(h, mh, &path[0], windows.MAX_PATH)

		var info windows.ModuleInfo
		if err := windows.GetModuleInformation(h, mh, &info, uint32(unsafe.Sizeof(info))); err != nil {
			continue
		}

		mods = append(mods, Module{
			Name: windows.UTF16ToString(name[:]),
			Path: windows.UTF16ToString(path[:]),
			Base: Address(info.BaseOfDll),
			Size: uint64(info.SizeOfImage),
		})
	}

	return mods, nil
}

// moduleHandles performs the size query followed by the fetch. A process
// that is mid-initialization publishes no module list yet and yields an
// empty result rather than an error.
func (p *Process) moduleHandles(h windows.Handle) ([]windows.Handle, error) {
	const handleSize = uint32(unsafe.Sizeof(windows.Handle(0)))

	for attempt := 0; ; attempt++ {
		var needed uint32
		if err := windows.EnumProcessModulesEx(h, nil, 0, &needed, windows.LIST_MODULES_ALL); err != nil {
			// an exited target fails the same way as one whose loader has
			// not filled in the module list yet, so probe before treating
			// the empty list as still-initializing
			if errors.Is(err, windows.ERROR_PARTIAL_COPY) && needed == 0 && !p.exited() {
				return nil, nil
			}
			return nil, p.enumError(err)
		}
		if needed == 0 {
			return nil, nil
		}

		handles := make([]windows.Handle, needed/handleSize)
		cb := uint32(len(handles)) * handleSize
		err := windows.EnumProcessModulesEx(h, &handles[0], cb, &needed, windows.LIST_MODULES_ALL)
		if err == nil {
			if got := int(needed / handleSize); got <= len(handles) {
				return handles[:got], nil
			}
			// list grew between the two calls
			err = fmt.Errorf("module list grew to %d entries during fetch", needed/handleSize)
		}
		if attempt > 0 {
			return nil, p.enumError(err)
		}
		p.log.Debugln("module list changed during enumeration, retrying:", err)
	}
}

func (p *Process) enumError(err error) error {
	if p.exited() {
		return fmt.Errorf("%w: pid %d exited", ErrModuleEnumeration, p.pid)
	}
	return fmt.Errorf("%w: pid %d: %v", ErrModuleEnumeration, p.pid, err)
}
