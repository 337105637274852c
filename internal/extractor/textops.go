package extractor

import (
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
)

// kerningSpace is the TJ displacement (thousandths of an em) past which a
// gap inside an array is treated as a word break.
const kerningSpace = -200

// textItems scans a page content stream and returns one item per text-showing
// operator (Tj, TJ, ' and "), in stream order.
func textItems(stream []byte) []string {
	var (
		items   []string
		strs    []string // string operands since the last operator
		inArray bool
		arr     strings.Builder
	)

	for i := 0; i < len(stream); {
		c := stream[i]
		switch {
		case c == '(':
			s, n := readLiteral(stream[i:])
			i += n
			if inArray {
				arr.WriteString(s)
			} else {
				strs = append(strs, s)
			}

		case c == '<' && i+1 < len(stream) && stream[i+1] == '<':
			i += 2

		case c == '>' && i+1 < len(stream) && stream[i+1] == '>':
			i += 2

		case c == '<':
			s, n := readHex(stream[i:])
			i += n
			if inArray {
				arr.WriteString(s)
			} else {
				strs = append(strs, s)
			}

		case c == '[':
			inArray = true
			arr.Reset()
			i++

		case c == ']':
			inArray = false
			strs = append(strs, arr.String())
			i++

		case c == '%':
			for i < len(stream) && stream[i] != '\n' && stream[i] != '\r' {
				i++
			}

		case c == '\'' || c == '"':
			if len(strs) > 0 {
				items = append(items, strs[len(strs)-1])
			}
			strs = strs[:0]
			i++

		case isNumberStart(c):
			j := i + 1
			for j < len(stream) && (stream[j] == '.' || (stream[j] >= '0' && stream[j] <= '9')) {
				j++
			}
			if inArray {
				if v, err := strconv.ParseFloat(string(stream[i:j]), 64); err == nil && v < kerningSpace {
					arr.WriteByte(' ')
				}
			}
			i = j

		case isRegular(c):
			j := i
			for j < len(stream) && isRegular(stream[j]) {
				j++
			}
			op := string(stream[i:j])
			i = j
			if op[0] == '/' {
				continue
			}
			switch op {
			case "Tj", "TJ":
				if len(strs) > 0 {
					items = append(items, strs[len(strs)-1])
				}
			}
			strs = strs[:0]

		default:
			i++
		}
	}

	return items
}

// joinItems normalises whitespace in each item and joins non-empty items with
// a single space.
func joinItems(items []string) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if s := normalizeSpace(it); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func normalizeSpace(s string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}

// readLiteral decodes a (...) string starting at b[0] and returns it with the
// number of bytes consumed. Balanced parentheses nest.
func readLiteral(b []byte) (string, int) {
	var sb strings.Builder
	depth := 0
	i := 0
	for ; i < len(b); i++ {
		c := b[i]
		switch c {
		case '(':
			depth++
			if depth > 1 {
				sb.WriteByte(c)
			}
		case ')':
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
		case '\\':
			if i+1 >= len(b) {
				continue
			}
			i++
			switch e := b[i]; e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
			case '\r', '\n':
				// line continuation
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for k := 0; k < 2 && i+1 < len(b) && b[i+1] >= '0' && b[i+1] <= '7'; k++ {
						i++
						val = val*8 + int(b[i]-'0')
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(e)
				}
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), i
}

// readHex decodes a <...> string starting at b[0].
func readHex(b []byte) (string, int) {
	end := 1
	for end < len(b) && b[end] != '>' {
		end++
	}
	var digits []byte
	for _, c := range b[1:min(end, len(b))] {
		if !unicode.IsSpace(rune(c)) {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	decoded, err := hex.DecodeString(string(digits))
	if err != nil {
		decoded = nil
	}
	return string(decoded), min(end+1, len(b))
}

func isNumberStart(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

// isRegular reports whether c is a PDF regular character (not whitespace or a delimiter).
func isRegular(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0,
		'(', ')', '<', '>', '[', ']', '{', '}', '%':
		return false
	}
	// '/' starts a name; the name itself is made of regular characters.
	return c != '\'' && c != '"'
}
