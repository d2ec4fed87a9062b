package theme

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// stateWords mark plain class names that only exist for a pseudo-class.
var stateWords = []string{"hover", "focus", "active", "visited", "disabled", "first", "last", "odd", "even"}

// ClassNames returns the sorted, unique class names selected in a
// stylesheet. Variant classes such as "sm:flex" are always kept; plain
// names mentioning a pseudo-class state are dropped.
func ClassNames(stylesheet string) []string {
	lexer := css.NewLexer(parse.NewInputString(stylesheet))
	seen := make(map[string]struct{})

	afterDot := false
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}

		if tt == css.DelimToken && len(data) == 1 && data[0] == '.' {
			afterDot = true
			continue
		}

		if afterDot && tt == css.IdentToken {
			name := unescapeIdent(string(data))
			if keepClass(name) {
				seen[name] = struct{}{}
			}
		}
		afterDot = false
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func keepClass(name string) bool {
	if name == "" {
		return false
	}
	if strings.Contains(name, ":") {
		return true
	}
	for _, word := range stateWords {
		if strings.Contains(name, word) {
			return false
		}
	}
	return true
}

// unescapeIdent resolves CSS escapes: "\:" becomes ":" and "\32 " becomes "2".
func unescapeIdent(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}

		j := i + 1
		for j < len(s) && j-i <= 6 && isHex(s[j]) {
			j++
		}
		if j == i+1 {
			b.WriteByte(s[j])
			i = j
			continue
		}

		code, err := strconv.ParseUint(s[i+1:j], 16, 32)
		if err != nil {
			b.WriteString(s[i:j])
		} else {
			b.WriteRune(rune(code))
		}
		if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
			j++
		}
		i = j - 1
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
