//go:build windows

package process

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"golang.org/x/sys/windows"
)

// GetExitCodeProcess reports this exit code while the process is still running
const stillActive = 259

// Process is an open read handle to another process. On Windows the handle
// comes from OpenProcess with read and query rights.
type Process struct {
	pid int
	log *logger.Logger

	mu     sync.Mutex
	handle windows.Handle
	closed bool
}

// Open acquires a read handle to the process with the given pid. The handle
// requests only the rights needed to read memory and query the module list.
// Every successful Open must be paired with a Close.
func Open(pid int) (*Process, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("%w: pid %d", ErrProcessNotFound, pid)
	}

	const access = windows.PROCESS_VM_READ | windows.PROCESS_QUERY_INFORMATION
	handle, err := windows.OpenProcess(access, false, uint32(pid))
	if err != nil {
		switch {
		case errors.Is(err, windows.ERROR_INVALID_PARAMETER):
			// OpenProcess reports a pid that does not exist as an invalid
			// parameter rather than a dedicated not-found error
			return nil, fmt.Errorf("%w: pid %d", ErrProcessNotFound, pid)
		case errors.Is(err, windows.ERROR_ACCESS_DENIED):
			return nil, fmt.Errorf("%w: pid %d: %v", ErrAccessDenied, pid, err)
		default:
			return nil, fmt.Errorf("%w: pid %d: %v", ErrOpenFailed, pid, err)
		}
	}

	p := &Process{
		pid:    pid,
		handle: handle,
		log:    logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid))),
	}
	p.log.Infoln("Process opened")

	return p, nil
}

// Close releases the handle. The first call releases the OS handle exactly
// once and reports any release error; every later call returns
// ErrProcessClosed without touching the handle again.
func (p *Process) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrProcessClosed
	}
	p.closed = true

	err := windows.CloseHandle(p.handle)
	p.handle = 0
	if err != nil {
		return fmt.Errorf("close handle for pid %d: %w", p.pid, err)
	}

	p.log.Infoln("Process closed")

	return nil
}

// Pid returns the process id this handle was opened for
func (p *Process) Pid() int {
	return p.pid
}

// win32Handle returns the OS handle, or ErrProcessClosed after Close
func (p *Process) win32Handle() (windows.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, ErrProcessClosed
	}
	return p.handle, nil
}

func (p *Process) readMemory(addr Address, buf []byte) error {
	h, err := p.win32Handle()
	if err != nil {
		return err
	}

	// a 32-bit build cannot pass addresses above its pointer width through
	if uint64(addr) > uint64(^uintptr(0)) {
		return fmt.Errorf("%w: %v is beyond the host pointer width", ErrInvalidAddress, addr)
	}

	var bytesRead uintptr
	err = windows.ReadProcessMemory(h, uintptr(addr), &buf[0], uintptr(len(buf)), &bytesRead)
	if err != nil {
		if p.exited() {
			return fmt.Errorf("%w: pid %d", ErrProcessExited, p.pid)
		}
		if errors.Is(err, windows.ERROR_PARTIAL_COPY) && bytesRead > 0 {
			p.log.Debugln("short read at", addr, "got", bytesRead, "of", len(buf), "bytes")
			return fmt.Errorf("%w: got %d of %d bytes at %v", ErrPartialRead, bytesRead, len(buf), addr)
		}
		return fmt.Errorf("%w: %d bytes at %v: %v", ErrInvalidAddress, len(buf), addr, err)
	}
	if int(bytesRead) < len(buf) {
		if p.exited() {
			return fmt.Errorf("%w: pid %d", ErrProcessExited, p.pid)
		}
		p.log.Debugln("short read at", addr, "got", bytesRead, "of", len(buf), "bytes")
		return fmt.Errorf("%w: got %d of %d bytes at %v", ErrPartialRead, bytesRead, len(buf), addr)
	}

	return nil
}

// exited reports whether the target has terminated. A live process reports
// STILL_ACTIVE as its exit code; a process that really exits with code 259
// is indistinguishable, which is a documented Win32 wart we accept.
func (p *Process) exited() bool {
	h, err := p.win32Handle()
	if err != nil {
		return false
	}
	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		return false
	}
	return code != stillActive
}
