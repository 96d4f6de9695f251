package storage

import (
	"errors"
	"strings"
)

// MaxNameLen is the longest player name kept on a highscore list.
const MaxNameLen = 10

// ErrEmptyName is returned when a name has no usable letters.
var ErrEmptyName = errors.New("storage: empty player name")

// NormalizeName keeps the ASCII letters of name, uppercased and cut to
// MaxNameLen. Everything else is dropped.
func NormalizeName(name string) (string, error) {
	var b strings.Builder
	for _, r := range name {
		if b.Len() == MaxNameLen {
			break
		}
		if IsNameRune(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyName
	}
	return strings.ToUpper(b.String()), nil
}

// IsNameRune reports whether r may appear in a player name.
func IsNameRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
