package process

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mainModuleName returns the file name the running test binary is mapped as
func mainModuleName(t *testing.T) string {
	t.Helper()
	exe, err := os.Executable()
	assertNoError(err, t, "locate own executable")
	return filepath.Base(exe)
}

func TestModulesSelf(t *testing.T) {
	p := openSelf(t)

	mods, err := p.Modules()
	assertNoError(err, t, "enumerate own modules")
	if len(mods) == 0 {
		t.Fatal("no modules enumerated for a running process")
	}

	name := mainModuleName(t)
	for _, m := range mods {
		if strings.EqualFold(m.Name, name) {
			if m.Base == 0 {
				t.Fatalf("module %q has zero base", m.Name)
			}
			if m.Size == 0 {
				t.Fatalf("module %q has zero size", m.Name)
			}
			return
		}
	}
	t.Fatalf("main module %q not in module list (%d modules)", name, len(mods))
}

func TestBaseAddressSelf(t *testing.T) {
	p := openSelf(t)
	name := mainModuleName(t)

	base, err := p.BaseAddress(name)
	assertNoError(err, t, "resolve own main module")
	if base == 0 {
		t.Fatal("zero base address for own main module")
	}

	// resolution is case-insensitive
	variant := strings.ToUpper(name)
	if variant == name {
		variant = strings.ToLower(name)
	}
	caseBase, err := p.BaseAddress(variant)
	assertNoError(err, t, "resolve main module with case variant")
	if caseBase != base {
		t.Fatalf("case variant resolved to %v, exact name to %v", caseBase, base)
	}
}

func TestBaseAddressNotFound(t *testing.T) {
	p := openSelf(t)

	_, err := p.BaseAddress("no-such-module-zzz.dll")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("missing module: got %v, want ErrModuleNotFound", err)
	}
}

func TestModuleRecordMatchesBaseAddress(t *testing.T) {
	p := openSelf(t)
	name := mainModuleName(t)

	base, err := p.BaseAddress(name)
	assertNoError(err, t, "resolve own main module")

	mod, err := p.Module(name)
	assertNoError(err, t, "fetch own main module record")
	if mod.Base != base {
		t.Fatalf("Module().Base = %v, BaseAddress() = %v", mod.Base, base)
	}
	if !strings.EqualFold(mod.Name, name) {
		t.Fatalf("Module().Name = %q, want %q", mod.Name, name)
	}
}
