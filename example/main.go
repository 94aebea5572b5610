package main

import (
	"fmt"
	"os"
	"path/filepath"

	"procmem/hexdump"
	"procmem/process"
)

func main() {
	// Attach to ourselves; any pid the OS lets us trace works identically.
	// To attach to another process instead:
	//
	//   info, err := process.FindOneByName("notepad.exe")
	//   proc, err := process.Open(info.PID)
	//
	proc, err := process.Open(os.Getpid())
	if err != nil {
		fmt.Printf("Failed to open process: %v\n", err)
		return
	}
	defer proc.Close()

	exe, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to locate own executable: %v\n", err)
		return
	}

	// Resolve the main module's load address by its file name
	name := filepath.Base(exe)
	base, err := proc.BaseAddress(name)
	if err != nil {
		fmt.Printf("Failed to resolve main module: %v\n", err)
		return
	}
	fmt.Printf("%s loaded at %v\n", name, base)

	// The first bytes of the image hold the executable format magic
	header, err := proc.ReadMemory(base, 64)
	if err != nil {
		fmt.Printf("Failed to read image header: %v\n", err)
		return
	}
	fmt.Print(hexdump.DumpWithOffset(header, uint64(base)))

	// Typed reads decode little-endian primitives at any readable address
	word, err := proc.ReadUINT32(base)
	if err != nil {
		fmt.Printf("Failed to read first image word: %v\n", err)
		return
	}
	fmt.Printf("First image word: 0x%08X\n", word)
}
