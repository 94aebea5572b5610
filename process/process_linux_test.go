//go:build linux

package process

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// spawnSleep starts a sleep child we are always allowed to trace
func spawnSleep(t *testing.T) *exec.Cmd {
	t.Helper()
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("no sleep binary on this system")
	}
	cmd := exec.Command("sleep", "30")
	assertNoError(cmd.Start(), t, "start sleep child")
	t.Cleanup(func() {
		cmd.Process.Kill()
		cmd.Wait()
	})
	return cmd
}

func TestOpenNotFound(t *testing.T) {
	// far above any default pid_max
	if _, err := Open(0x7FFFFFFE); !errors.Is(err, ErrProcessNotFound) {
		t.Fatalf("Open of absent pid: got %v, want ErrProcessNotFound", err)
	}
}

func TestOpenAccessDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, nothing is denied")
	}
	_, err := Open(1)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("Open(1) as unprivileged user: got %v, want ErrAccessDenied", err)
	}
}

func TestOpenChild(t *testing.T) {
	cmd := spawnSleep(t)

	p, err := Open(cmd.Process.Pid)
	assertNoError(err, t, "open sleep child")
	assertNoError(p.Close(), t, "close sleep child")
}

func TestReadFromExitedProcess(t *testing.T) {
	cmd := spawnSleep(t)

	p, err := Open(cmd.Process.Pid)
	assertNoError(err, t, "open sleep child")
	defer p.Close()

	assertNoError(cmd.Process.Kill(), t, "kill sleep child")
	cmd.Wait()

	if _, err := p.ReadMemory(0x1000, 8); !errors.Is(err, ErrProcessExited) {
		t.Fatalf("read from exited process: got %v, want ErrProcessExited", err)
	}
	if _, err := p.Modules(); !errors.Is(err, ErrModuleEnumeration) {
		t.Fatalf("module enumeration on exited process: got %v, want ErrModuleEnumeration", err)
	}
}

func TestBaseAddressOfChild(t *testing.T) {
	cmd := spawnSleep(t)

	p, err := Open(cmd.Process.Pid)
	assertNoError(err, t, "open sleep child")
	defer p.Close()

	// the image name as the child maps it; sleep may be a busybox symlink
	path, err := filepath.EvalSymlinks(cmd.Path)
	assertNoError(err, t, "resolve sleep binary path")
	name := filepath.Base(path)

	// just after Start the maps can still show the pre-exec image
	var base Address
	deadline := time.Now().Add(2 * time.Second)
	for {
		base, err = p.BaseAddress(name)
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	assertNoError(err, t, "resolve child main module")
	if base == 0 {
		t.Fatal("zero base address for child main module")
	}
}
