package process

import "fmt"

// Address is a location in the target process address space. It is always
// 64 bits wide regardless of the host pointer size so a 32-bit tool can still
// address a 64-bit target.
type Address uint64

// String formats the address as 0x-prefixed hex
func (a Address) String() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// Module describes one executable image loaded in the target process
type Module struct {
	Name string  // file name without directory components, e.g. "client.dll" or "libc.so.6"
	Path string  // full path as reported by the target, may be empty
	Base Address // load address of the image
	Size uint64  // extent of the image in bytes starting at Base
}

// ProcessInfo identifies a candidate process returned by FindByName. It
// carries no handle; pass PID to Open to start reading.
type ProcessInfo struct {
	PID  int    // process id
	Name string // executable name
	Exe  string // full executable path when the platform exposes one cheaply
}
