package process

import (
	"encoding/binary"
	"math"
)

// All multi-byte reads decode little-endian, matching the x86/x86-64 targets
// this package is used against.

// ReadUINT8 reads an unsigned 8-bit integer from the specified address
func (p *Process) ReadUINT8(addr Address) (uint8, error) {
	data, err := p.ReadMemory(addr, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// ReadUINT16 reads an unsigned 16-bit integer from the specified address
func (p *Process) ReadUINT16(addr Address) (uint16, error) {
	data, err := p.ReadMemory(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadUINT32 reads an unsigned 32-bit integer from the specified address
func (p *Process) ReadUINT32(addr Address) (uint32, error) {
	data, err := p.ReadMemory(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadUINT64 reads an unsigned 64-bit integer from the specified address
func (p *Process) ReadUINT64(addr Address) (uint64, error) {
	data, err := p.ReadMemory(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

// ReadINT8 reads a signed 8-bit integer from the specified address
func (p *Process) ReadINT8(addr Address) (int8, error) {
	data, err := p.ReadMemory(addr, 1)
	if err != nil {
		return 0, err
	}
	return int8(data[0]), nil
}

// ReadINT16 reads a signed 16-bit integer from the specified address
func (p *Process) ReadINT16(addr Address) (int16, error) {
	data, err := p.ReadMemory(addr, 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(data)), nil
}

// ReadINT32 reads a signed 32-bit integer from the specified address
func (p *Process) ReadINT32(addr Address) (int32, error) {
	data, err := p.ReadMemory(addr, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(data)), nil
}

// ReadINT64 reads a signed 64-bit integer from the specified address
func (p *Process) ReadINT64(addr Address) (int64, error) {
	data, err := p.ReadMemory(addr, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(data)), nil
}

// ReadFLOAT32 reads a 32-bit IEEE 754 float from the specified address
func (p *Process) ReadFLOAT32(addr Address) (float32, error) {
	data, err := p.ReadMemory(addr, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(data)), nil
}

// ReadFLOAT64 reads a 64-bit IEEE 754 float from the specified address
func (p *Process) ReadFLOAT64(addr Address) (float64, error) {
	data, err := p.ReadMemory(addr, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(data)), nil
}

// ReadBool reads a single byte from the specified address and reports whether
// it holds exactly 1
func (p *Process) ReadBool(addr Address) (bool, error) {
	data, err := p.ReadMemory(addr, 1)
	if err != nil {
		return false, err
	}
	return data[0] == 1, nil
}

// ReadPOINTER reads a 64-bit pointer value from the specified address
func (p *Process) ReadPOINTER(addr Address) (Address, error) {
	data, err := p.ReadMemory(addr, 8)
	if err != nil {
		return 0, err
	}
	return Address(binary.LittleEndian.Uint64(data)), nil
}

// ReadNTS reads a null-terminated string from the specified address. At most
// maxLength bytes are read from the target in a single request, so the whole
// window must be readable even when the terminator appears early. If no null
// byte occurs within maxLength bytes the full window is returned as a string.
func (p *Process) ReadNTS(addr Address, maxLength int) (string, error) {
	if maxLength == 0 {
		return "", nil
	}

	data, err := p.ReadMemory(addr, maxLength)
	if err != nil {
		return "", err
	}

	for i, b := range data {
		if b == 0 {
			return string(data[:i]), nil
		}
	}
	return string(data), nil
}
