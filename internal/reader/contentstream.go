package reader

import (
	"strconv"
	"strings"
)

// kerningGap is the TJ displacement, in thousandths of a text space unit,
// beyond which adjacent strings are treated as separate words.
const kerningGap = 250

// contentStreamText recovers readable text from a page content stream. Only
// literal strings shown by Tj, TJ, ' and " contribute; their bytes are
// interpreted as Latin-1.
func contentStreamText(data []byte) string {
	var sb strings.Builder
	var pending strings.Builder
	inArray := false

	newline := func() {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteByte('\n')
		}
	}
	space := func() {
		s := sb.String()
		if len(s) > 0 && !strings.HasSuffix(s, " ") && !strings.HasSuffix(s, "\n") {
			sb.WriteByte(' ')
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '(':
			s, n := readLiteralString(data[i:])
			pending.WriteString(s)
			i += n
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '[':
			inArray = true
			i++
		case c == ']':
			inArray = false
			i++
		case c == '<':
			// Hex strings and dictionaries are skipped.
			for i < len(data) && data[i] != '>' {
				i++
			}
			for i < len(data) && data[i] == '>' {
				i++
			}
		case isNumberStart(c):
			j := i + 1
			for j < len(data) && isNumberByte(data[j]) {
				j++
			}
			if inArray {
				if v, err := strconv.ParseFloat(string(data[i:j]), 64); err == nil && v <= -kerningGap {
					pending.WriteByte(' ')
				}
			}
			i = j
		case isRegular(c):
			j := i + 1
			for j < len(data) && isRegular(data[j]) {
				j++
			}
			switch string(data[i:j]) {
			case "Tj", "TJ":
				sb.WriteString(pending.String())
			case "'", "\"":
				newline()
				sb.WriteString(pending.String())
			case "T*", "ET":
				newline()
			case "Td", "TD", "Tm":
				space()
			}
			pending.Reset()
			i = j
		default:
			i++
		}
	}
	return strings.TrimRight(sb.String(), " \n")
}

// readLiteralString decodes a parenthesised PDF string starting at data[0]
// and returns the text and the number of bytes consumed.
func readLiteralString(data []byte) (string, int) {
	var out []rune
	depth := 0
	i := 0
	for i < len(data) {
		c := data[i]
		switch c {
		case '(':
			if depth > 0 {
				out = append(out, '(')
			}
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				return string(out), i
			}
			out = append(out, ')')
		case '\\':
			i++
			if i >= len(data) {
				return string(out), i
			}
			e := data[i]
			switch e {
			case 'n':
				out = append(out, '\n')
				i++
			case 'r':
				out = append(out, '\r')
				i++
			case 't':
				out = append(out, '\t')
				i++
			case 'b':
				out = append(out, '\b')
				i++
			case 'f':
				out = append(out, '\f')
				i++
			case '\r':
				i++
				if i < len(data) && data[i] == '\n' {
					i++
				}
			case '\n':
				i++
			default:
				if e >= '0' && e <= '7' {
					v := 0
					n := 0
					for n < 3 && i < len(data) && data[i] >= '0' && data[i] <= '7' {
						v = v*8 + int(data[i]-'0')
						i++
						n++
					}
					out = append(out, rune(v&0xFF))
					continue
				}
				out = append(out, rune(e))
				i++
			}
		default:
			out = append(out, rune(c))
			i++
		}
	}
	return string(out), i
}

func isNumberStart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}

// isRegular reports whether c can be part of an operator or name token.
func isRegular(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0,
		'(', ')', '<', '>', '[', ']', '{', '}', '%':
		return false
	}
	return true
}
