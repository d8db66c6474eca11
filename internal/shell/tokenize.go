package shell

import (
	"errors"
	"strings"
)

var ErrUnterminatedQuote = errors.New("shell: unterminated quote")

// Tokenize splits line on whitespace. Single or double quotes group words
// and keep their contents literal. Outside quotes a backslash escapes a
// following blank or quote character and is kept as is otherwise, so
// Windows paths pass through untouched.
func Tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inToken bool
		quote   rune
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\\':
			inToken = true
			if i+1 < len(runes) && escapable(runes[i+1]) {
				i++
				cur.WriteRune(runes[i])
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case isBlank(r):
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func escapable(r rune) bool {
	return r == ' ' || r == '\t' || r == '"' || r == '\''
}
