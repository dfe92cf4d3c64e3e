package naming

import (
	"go/token"
	"strings"
	"unicode"
)

// Words splits an identifier into its word tokens.
// Separators (_, -, spaces) are dropped and camel humps start a new word.
// Examples:
//   - "account_id" -> ["account", "id"]
//   - "AccountID" -> ["Account", "ID"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "getHTTPResponse" -> ["get", "HTTP", "Response"]
func Words(s string) []string {
	if s == "" {
		return nil
	}

	var words []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && startsWord(runes, i) && current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsWord reports whether a new word starts at position i.
func startsWord(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prev)

	// "orderID" splits before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prev) {
		return true
	}

	// "XMLParser" splits before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}

// Sanitize strips identifier escaping from a declared field name.
// Raw identifiers ("r#type") and the trailing underscore conventionally used
// to dodge a Go keyword ("type_") both come back as "type".
func Sanitize(ident string) string {
	if plain, ok := strings.CutPrefix(ident, "r#"); ok && plain != "" {
		return plain
	}

	if plain, ok := strings.CutSuffix(ident, "_"); ok && token.IsKeyword(plain) {
		return plain
	}

	return ident
}
