//go:build windows

package process

import (
	"errors"
	"os/exec"
	"testing"
	"time"
)

// spawnPing starts a loopback ping that runs for about 30 seconds
func spawnPing(t *testing.T) *exec.Cmd {
	t.Helper()
	if _, err := exec.LookPath("ping"); err != nil {
		t.Skip("no ping binary on this system")
	}
	cmd := exec.Command("ping", "-n", "30", "127.0.0.1")
	assertNoError(cmd.Start(), t, "start ping child")
	t.Cleanup(func() {
		cmd.Process.Kill()
		cmd.Wait()
	})
	return cmd
}

func TestOpenNotFound(t *testing.T) {
	// pids are multiples of four, 3 can never name a process
	if _, err := Open(3); !errors.Is(err, ErrProcessNotFound) {
		t.Fatalf("Open of absent pid: got %v, want ErrProcessNotFound", err)
	}
}

func TestOpenSystemProcess(t *testing.T) {
	// pid 4 is the System process, unreadable without elevation
	p, err := Open(4)
	if err == nil {
		p.Close()
		t.Skip("running elevated, System process is readable")
	}
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("Open(4): got %v, want ErrAccessDenied", err)
	}
}

func TestOpenChild(t *testing.T) {
	cmd := spawnPing(t)

	p, err := Open(cmd.Process.Pid)
	assertNoError(err, t, "open ping child")
	assertNoError(p.Close(), t, "close ping child")
}

func TestReadFromExitedProcess(t *testing.T) {
	cmd := spawnPing(t)

	p, err := Open(cmd.Process.Pid)
	assertNoError(err, t, "open ping child")
	defer p.Close()

	assertNoError(cmd.Process.Kill(), t, "kill ping child")
	cmd.Wait()

	if _, err := p.ReadMemory(0x10000, 8); !errors.Is(err, ErrProcessExited) {
		t.Fatalf("read from exited process: got %v, want ErrProcessExited", err)
	}
	if _, err := p.Modules(); !errors.Is(err, ErrModuleEnumeration) {
		t.Fatalf("module enumeration on exited process: got %v, want ErrModuleEnumeration", err)
	}
}

func TestBaseAddressKernel32(t *testing.T) {
	p := openSelf(t)

	// kernel32 is loaded in every user-mode process
	base, err := p.BaseAddress("kernel32.dll")
	assertNoError(err, t, "resolve kernel32.dll")
	if base == 0 {
		t.Fatal("zero base address for kernel32.dll")
	}

	upper, err := p.BaseAddress("KERNEL32.DLL")
	assertNoError(err, t, "resolve KERNEL32.DLL")
	if upper != base {
		t.Fatalf("case variant resolved to %v, lowercase to %v", upper, base)
	}
}

func TestFindByName(t *testing.T) {
	cmd := spawnPing(t)
	pid := cmd.Process.Pid

	deadline := time.Now().Add(2 * time.Second)
	for {
		ps, err := FindByName("ping.exe")
		assertNoError(err, t, "find ping processes")

		for _, info := range ps {
			if info.PID == pid {
				return
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("child pid %d never showed up in FindByName results", pid)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestFindByNameNoMatch(t *testing.T) {
	ps, err := FindByName("no-such-process-zzz.exe")
	assertNoError(err, t, "find absent process")
	if len(ps) != 0 {
		t.Fatalf("found %d processes for an absent name", len(ps))
	}
}
