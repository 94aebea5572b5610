// Package hexdump renders byte slices as annotated hex dumps for terminals.
package hexdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/Moonlight-Companies/gologger/coloransi"
)

// Options controls the layout and coloring of a dump
type Options struct {
	// BytesPerLine defines the number of bytes to display per line
	BytesPerLine int

	// GroupSize defines the grouping of bytes (usually 1, 2, 4, or 8)
	GroupSize int

	// ShowASCII determines whether to show the ASCII representation
	ShowASCII bool

	// ShowOffset determines whether to show the offset/address column
	ShowOffset bool

	// StartOffset is the offset printed for the first byte
	StartOffset uint64

	// OffsetWidth is the width of the offset column in hex digits
	OffsetWidth int

	// MaxLines stops the dump after this many lines, 0 for no limit
	MaxLines int

	// NoColor disables ANSI coloring entirely
	NoColor bool

	// OffsetColor is the color for the offset/address column
	OffsetColor coloransi.ColorCode

	// HexColor is the color for nonzero hex values
	HexColor coloransi.ColorCode

	// ZeroColor is the color for zero bytes
	ZeroColor coloransi.ColorCode

	// ASCIIColor is the color for printable characters
	ASCIIColor coloransi.ColorCode

	// NonPrintableColor is the color for the dots standing in for
	// non-printable characters
	NonPrintableColor coloransi.ColorCode
}

// DefaultOptions returns the default hexdump options
func DefaultOptions() Options {
	return Options{
		BytesPerLine:      16,
		GroupSize:         1,
		ShowASCII:         true,
		ShowOffset:        true,
		OffsetWidth:       8,
		OffsetColor:       coloransi.Cyan,
		HexColor:          coloransi.Green,
		ZeroColor:         coloransi.BrightBlack,
		ASCIIColor:        coloransi.White,
		NonPrintableColor: coloransi.BrightBlack,
	}
}

// Dump renders data as a string using the given options
func Dump(data []byte, options Options) string {
	var sb strings.Builder
	DumpToWriter(&sb, data, options)
	return sb.String()
}

// DumpToWriter renders data to a writer using the given options
func DumpToWriter(w io.Writer, data []byte, options Options) {
	if options.BytesPerLine <= 0 {
		options.BytesPerLine = 16
	}
	if options.OffsetWidth <= 0 {
		options.OffsetWidth = 8
	}

	lines := 0
	for start := 0; start < len(data); start += options.BytesPerLine {
		if options.MaxLines > 0 && lines >= options.MaxLines {
			fmt.Fprintf(w, "... %d more bytes\n", len(data)-start)
			return
		}

		end := start + options.BytesPerLine
		if end > len(data) {
			end = len(data)
		}
		io.WriteString(w, formatLine(data[start:end], options.StartOffset+uint64(start), options))
		lines++
	}
}

// DumpBytes renders data with the default options
func DumpBytes(data []byte) string {
	return Dump(data, DefaultOptions())
}

// DumpWithOffset renders data with the default options, labeling the first
// byte with startOffset instead of zero
func DumpWithOffset(data []byte, startOffset uint64) string {
	options := DefaultOptions()
	options.StartOffset = startOffset
	return Dump(data, options)
}

// DumpPlain renders data without any ANSI coloring, for logs and tests
func DumpPlain(data []byte, startOffset uint64) string {
	options := DefaultOptions()
	options.StartOffset = startOffset
	options.NoColor = true
	return Dump(data, options)
}

func formatLine(line []byte, offset uint64, o Options) string {
	var sb strings.Builder

	if o.ShowOffset {
		sb.WriteString(o.paint(o.OffsetColor, fmt.Sprintf("%0*x", o.OffsetWidth, offset)))
		sb.WriteString("  ")
	}

	group := o.GroupSize
	if group <= 0 {
		group = 1
	}
	for i := 0; i < o.BytesPerLine; i++ {
		if i > 0 && i%group == 0 {
			sb.WriteByte(' ')
		}
		if i >= len(line) {
			sb.WriteString("  ")
			continue
		}
		cell := fmt.Sprintf("%02x", line[i])
		if line[i] == 0 {
			sb.WriteString(o.paint(o.ZeroColor, cell))
		} else {
			sb.WriteString(o.paint(o.HexColor, cell))
		}
	}

	if o.ShowASCII {
		sb.WriteString("  |")
		for _, b := range line {
			if b >= 0x20 && b < 0x7F {
				sb.WriteString(o.paint(o.ASCIIColor, string(b)))
			} else {
				sb.WriteString(o.paint(o.NonPrintableColor, "."))
			}
		}
		sb.WriteString("|")
	}

	sb.WriteByte('\n')
	return sb.String()
}

func (o Options) paint(color coloransi.ColorCode, s string) string {
	if o.NoColor {
		return s
	}
	return coloransi.Foreground(color, s)
}
