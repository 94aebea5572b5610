package process

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"unsafe"
)

func assertNoError(err error, t *testing.T, s string) {
	t.Helper()
	if err != nil {
		_, file, line, _ := runtime.Caller(1)
		fname := filepath.Base(file)
		t.Fatalf("failed assertion at %s:%d: %s : %s\n", fname, line, s, err)
	}
}

// openSelf opens the test process itself as the read target
func openSelf(t *testing.T) *Process {
	t.Helper()
	p, err := Open(os.Getpid())
	assertNoError(err, t, "open self")
	t.Cleanup(func() { p.Close() })
	return p
}

// addrOf returns the address of b's first byte as seen by the target,
// which for these tests is our own address space
func addrOf(b []byte) Address {
	return Address(uintptr(unsafe.Pointer(&b[0])))
}
