package extract

import (
	"strconv"
	"strings"
)

// Destination groups whose contents are formatting metadata, not body
// text.
var rtfSkipGroups = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"header":     true,
	"footer":     true,
}

// RTFText strips RTF control words and groups, keeping only the document
// body text.
func RTFText(data []byte) string {
	var b strings.Builder
	src := string(data)
	skipDepth := 0 // brace depth inside a skipped group, 0 = not skipping
	depth := 0

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '{':
			depth++
		case '}':
			if skipDepth > 0 && depth == skipDepth {
				skipDepth = 0
			}
			depth--
		case '\\':
			word, param, consumed := readRTFControl(src[i+1:])
			i += consumed

			if skipDepth > 0 {
				continue
			}
			switch word {
			case "par", "line", "sect", "page":
				b.WriteByte('\n')
			case "tab":
				b.WriteByte('\t')
			case "'":
				if v, err := strconv.ParseUint(param, 16, 8); err == nil {
					b.WriteRune(rune(v))
				}
			case "u":
				if v, err := strconv.Atoi(param); err == nil {
					// codepoints above 32767 arrive as negative 16-bit values
					if v < 0 {
						v += 65536
					}
					b.WriteRune(rune(v))
				}
				// skip the ANSI fallback character that follows \uN
				if i+1 < len(src) {
					switch {
					case src[i+1] == '\\' && i+4 < len(src) && src[i+2] == '\'':
						i += 4
					case src[i+1] != '\\' && src[i+1] != '{' && src[i+1] != '}':
						i++
					}
				}
			case "{", "}", "\\":
				b.WriteString(word)
			case "*":
				// ignorable destination, drop the enclosing group
				skipDepth = depth
			default:
				if rtfSkipGroups[word] {
					skipDepth = depth
				}
			}
		case '\r', '\n':
			// literal newlines in RTF source are not content
		default:
			if skipDepth == 0 {
				b.WriteByte(c)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// readRTFControl parses the control word or symbol following a backslash
// and reports how many bytes it consumed.
func readRTFControl(s string) (word, param string, consumed int) {
	if s == "" {
		return "", "", 0
	}

	// control symbol: single non-alphabetic character
	if !isRTFAlpha(s[0]) {
		if s[0] == '\'' && len(s) >= 3 {
			return "'", s[1:3], 3
		}
		return string(s[0]), "", 1
	}

	i := 0
	for i < len(s) && isRTFAlpha(s[i]) {
		i++
	}
	word = s[:i]

	j := i
	if j < len(s) && (s[j] == '-' || s[j] >= '0' && s[j] <= '9') {
		j++
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		param = s[i:j]
	}

	// one space after a control word belongs to it
	if j < len(s) && s[j] == ' ' {
		j++
	}
	return word, param, j
}

func isRTFAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
