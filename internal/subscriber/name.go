package subscriber

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// MaxNameLength is the longest accepted name, in grapheme clusters.
const MaxNameLength = 256

const forbiddenNameChars = `/()"<>\{}`

// Name is a subscriber name that passed ParseName.
type Name struct {
	value string
}

// ParseName trims surrounding whitespace and accepts the result when it is
// valid UTF-8, 1 to 256 grapheme clusters long and contains none of / ( ) " < > \ { }.
func ParseName(raw string) (Name, error) {
	if !utf8.ValidString(raw) {
		return Name{}, invalid("name", "must be valid UTF-8")
	}
	s := strings.TrimSpace(raw)

	if s == "" {
		return Name{}, invalid("name", "must not be empty")
	}
	if n := uniseg.GraphemeClusterCount(s); n > MaxNameLength {
		return Name{}, invalid("name", "must be at most 256 characters")
	}
	if i := strings.IndexAny(s, forbiddenNameChars); i >= 0 {
		return Name{}, invalid("name", "must not contain "+string(s[i]))
	}

	return Name{value: s}, nil
}

func (n Name) String() string {
	return n.value
}
