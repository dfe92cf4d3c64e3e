package naming

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:generate go tool stringer -type=Convention -output=convention_string.go

// Convention is a type-wide renaming rule applied to every declared field name.
type Convention int

const (
	None Convention = iota // no renaming; declared names are used verbatim

	Lower
	Upper
	Pascal
	Camel
	Snake
	ScreamingSnake
	Kebab
	ScreamingKebab
)

// ErrUnknownConvention is returned by Parse for names it does not recognize.
var ErrUnknownConvention = errors.New("unknown naming convention")

// conventionNames holds the spelling used in tags and description files.
var conventionNames = [...]string{
	None:           "",
	Lower:          "lowercase",
	Upper:          "UPPERCASE",
	Pascal:         "PascalCase",
	Camel:          "camelCase",
	Snake:          "snake_case",
	ScreamingSnake: "SCREAMING_SNAKE_CASE",
	Kebab:          "kebab-case",
	ScreamingKebab: "SCREAMING-KEBAB-CASE",
}

// Conventions returns every convention except None, in declaration order.
func Conventions() []Convention {
	return []Convention{Lower, Upper, Pascal, Camel, Snake, ScreamingSnake, Kebab, ScreamingKebab}
}

// Names returns the accepted spellings of all conventions.
func Names() []string {
	all := Conventions()

	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name()
	}

	return names
}

// Name returns the spelling Parse accepts for c.
func (c Convention) Name() string {
	if c < None || int(c) >= len(conventionNames) {
		return c.String()
	}

	return conventionNames[c]
}

// Parse looks up a convention by its spelling ("camelCase", "snake_case", ...).
// An empty name yields None.
func Parse(name string) (Convention, error) {
	if name == "" {
		return None, nil
	}

	for _, c := range Conventions() {
		if c.Name() == name {
			return c, nil
		}
	}

	msg := fmt.Sprintf("%q, available options are %s", name, strings.Join(Names(), ", "))
	if best, ok := Suggest(name, Names()); ok {
		msg += fmt.Sprintf(" (did you mean %q?)", best)
	}

	return None, fmt.Errorf("%w %s", ErrUnknownConvention, msg)
}

// Apply renames ident according to c.
func (c Convention) Apply(ident string) string {
	if c == None {
		return ident
	}

	words := Words(ident)

	switch c {
	case Lower:
		return strings.ToLower(strings.Join(words, ""))
	case Upper:
		return strings.ToUpper(strings.Join(words, ""))
	case Pascal:
		var b strings.Builder
		for _, w := range words {
			b.WriteString(capitalize(w))
		}

		return b.String()
	case Camel:
		return lowerFirst(Pascal.Apply(ident))
	case Snake:
		return joinWords(words, "_", strings.ToLower)
	case ScreamingSnake:
		return joinWords(words, "_", strings.ToUpper)
	case Kebab:
		return joinWords(words, "-", strings.ToLower)
	case ScreamingKebab:
		return joinWords(words, "-", strings.ToUpper)
	default:
		return ident
	}
}

func joinWords(words []string, sep string, fold func(string) string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = fold(w)
	}

	return strings.Join(out, sep)
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}

	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}
