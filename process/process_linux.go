//go:build linux

package process

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"golang.org/x/sys/unix"
)

// Process is an open read handle to another process. On Linux the handle is
// a descriptor for /proc/<pid>/mem; reads use pread so no file position is
// shared between goroutines.
type Process struct {
	pid int
	log *logger.Logger

	mu     sync.Mutex
	memfd  int
	closed bool
}

// Open acquires a read handle to the process with the given pid. The kernel
// performs the ptrace access check when the mem file is opened, so a
// successful Open means reads are permitted. Every successful Open must be
// paired with a Close.
func Open(pid int) (*Process, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("%w: pid %d", ErrProcessNotFound, pid)
	}

	fd, err := unix.Open(fmt.Sprintf("/proc/%d/mem", pid), unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		switch {
		case errors.Is(err, unix.ENOENT), errors.Is(err, unix.ESRCH):
			return nil, fmt.Errorf("%w: pid %d", ErrProcessNotFound, pid)
		case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
			return nil, fmt.Errorf("%w: pid %d: %v", ErrAccessDenied, pid, err)
		default:
			return nil, fmt.Errorf("%w: pid %d: %v", ErrOpenFailed, pid, err)
		}
	}

	p := &Process{
		pid:   pid,
		memfd: fd,
		log:   logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid))),
	}
	p.log.Infoln("Process opened")

	return p, nil
}

// Close releases the handle. The first call releases the descriptor exactly
// once and reports any release error; every later call returns
// ErrProcessClosed without touching the descriptor again.
func (p *Process) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrProcessClosed
	}
	p.closed = true

	err := unix.Close(p.memfd)
	p.memfd = -1
	if err != nil {
		return fmt.Errorf("close mem handle for pid %d: %w", p.pid, err)
	}

	p.log.Infoln("Process closed")

	return nil
}

// Pid returns the process id this handle was opened for
func (p *Process) Pid() int {
	return p.pid
}

// handle returns the mem descriptor, or ErrProcessClosed after Close
func (p *Process) handle() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return -1, ErrProcessClosed
	}
	return p.memfd, nil
}

func (p *Process) readMemory(addr Address, buf []byte) error {
	fd, err := p.handle()
	if err != nil {
		return err
	}

	// pread offsets are signed; nothing in user space lives above MaxInt64
	if uint64(addr) > math.MaxInt64 {
		return fmt.Errorf("%w: %v is beyond the user address space", ErrInvalidAddress, addr)
	}

	n, err := unix.Pread(fd, buf, int64(addr))
	if err != nil {
		if errors.Is(err, unix.ESRCH) || p.exited() {
			return fmt.Errorf("%w: pid %d", ErrProcessExited, p.pid)
		}
		return fmt.Errorf("%w: %d bytes at %v: %v", ErrInvalidAddress, len(buf), addr, err)
	}
	if n < len(buf) {
		if p.exited() {
			return fmt.Errorf("%w: pid %d", ErrProcessExited, p.pid)
		}
		p.log.Debugln("short read at", addr, "got", n, "of", len(buf), "bytes")
		return fmt.Errorf("%w: got %d of %d bytes at %v", ErrPartialRead, n, len(buf), addr)
	}

	return nil
}

// /proc/<pid>/stat state letters that mean the address space is gone
const (
	stateZombie = 'Z'
	stateDead   = 'X'
)

// exited reports whether the target is gone or is a zombie whose memory has
// already been torn down
func (p *Process) exited() bool {
	if err := unix.Kill(p.pid, 0); errors.Is(err, unix.ESRCH) {
		return true
	}
	state, err := readProcState(p.pid)
	if err != nil {
		return os.IsNotExist(err)
	}
	return state == stateZombie || state == stateDead
}

// readProcState returns the single-letter state field from /proc/<pid>/stat.
// The comm field may contain spaces, so parsing starts after its closing paren.
func readProcState(pid int) (byte, error) {
	data, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		return 0, err
	}

	s := string(data)
	i := strings.LastIndexByte(s, ')')
	if i < 0 {
		return 0, fmt.Errorf("malformed stat line for pid %d", pid)
	}
	fields := strings.Fields(s[i+1:])
	if len(fields) == 0 {
		return 0, fmt.Errorf("malformed stat line for pid %d", pid)
	}
	return fields[0][0], nil
}
