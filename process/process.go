// Package process provides read-only access to the memory of other processes.
//
// A Process is obtained with Open, used for reads and module queries, and
// must be released with Close. All read methods are safe for concurrent use
// until Close is called.
package process

import (
	"fmt"
)

// ReadMemory reads size bytes from the target process starting at addr.
// The returned slice is exactly size bytes long; a short read from the target
// is reported as ErrPartialRead and no partial data is returned. A zero size
// returns an empty result without touching the target.
func (p *Process) ReadMemory(addr Address, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative read size %d", ErrInvalidAddress, size)
	}
	if size == 0 {
		return nil, nil
	}
	if uint64(addr)+uint64(size) < uint64(addr) {
		return nil, fmt.Errorf("%w: %d bytes at %v overflows the address space", ErrInvalidAddress, size, addr)
	}

	buf := make([]byte, size)
	if err := p.readMemory(addr, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
