package utils

import (
	"strings"
)

const (
	artBase  = 8
	artRows  = artBase + 1
	artCols  = artBase*2 + 1
	artChars = " .o+=*BOX@%&#/^SE"
)

// FingerprintRandomArt renders a digest as the OpenSSH style
// "drunken bishop" ASCII art box with an optional header caption.
func FingerprintRandomArt(head string, digest []byte) string {
	symbols := len(artChars) - 2
	start := symbols
	end := symbols + 1

	field := make([]int, artCols*artRows)
	x := artCols / 2
	y := artRows / 2

	for _, input := range digest {
		for range 4 {
			if input&0x1 != 0 {
				x++
			} else {
				x--
			}
			if input&0x2 != 0 {
				y++
			} else {
				y--
			}
			x = min(max(x, 0), artCols-1)
			y = min(max(y, 0), artRows-1)

			idx := x + y*artCols
			if field[idx] < symbols-1 {
				field[idx]++
			}
			input >>= 2
		}
	}

	field[artCols/2+(artRows/2)*artCols] = start
	field[x+y*artCols] = end

	var out strings.Builder
	if head != "" {
		if len(head) > artCols {
			head = head[:artCols]
		}
		padL := (artCols - len(head)) / 2
		padR := artCols - len(head) - padL
		if padL != 0 {
			out.WriteByte('+')
			out.WriteString(strings.Repeat("-", padL-1))
		}
		out.WriteByte('[')
		out.WriteString(head)
		out.WriteByte(']')
		if padR != 0 {
			out.WriteString(strings.Repeat("-", padR-1))
			out.WriteByte('+')
		}
	} else {
		out.WriteByte('+')
		out.WriteString(strings.Repeat("-", artCols-2))
		out.WriteByte('+')
	}
	out.WriteByte('\n')

	i := 0
	for range artRows {
		out.WriteByte('|')
		for range artCols {
			out.WriteByte(artChars[field[i]])
			i++
		}
		out.WriteString("|\n")
	}
	out.WriteByte('+')
	out.WriteString(strings.Repeat("-", artCols))
	out.WriteString("+\n")

	return out.String()
}
