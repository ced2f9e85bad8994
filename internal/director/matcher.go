package director

import (
	"strings"
	"unicode"

	"github.com/m-goikhman/chicago-formula-web/pkg/character"
)

// AddressMatcher decides whether a player message unambiguously addresses
// exactly one character. The ambiguity threshold is policy, not mechanism,
// so it is injectable and tunable independently of the Director.
type AddressMatcher interface {
	// Match returns the addressed character key, or false if the message
	// has no unambiguous single addressee.
	Match(text string) (string, bool)
}

// StrictMatcher is the default, conservative policy: the message must
// mention exactly one suspect, and that name must be in an addressee
// position (leading the message, or set off by a vocative comma).
// Multi-character mentions and passing references never match.
type StrictMatcher struct {
	registry *character.Registry
}

var _ AddressMatcher = (*StrictMatcher)(nil)

// NewStrictMatcher creates the default matcher over the given registry.
func NewStrictMatcher(registry *character.Registry) *StrictMatcher {
	return &StrictMatcher{registry: registry}
}

func (m *StrictMatcher) Match(text string) (string, bool) {
	lower := strings.ToLower(text)

	matched := ""
	vocative := false
	for _, c := range m.registry.Suspects() {
		names := []string{strings.ToLower(c.Name), strings.ToLower(firstName(c.Name)), c.Key}
		found := false
		for _, name := range names {
			idx := wordIndex(lower, name)
			if idx < 0 {
				continue
			}
			found = true
			if isAddressee(lower, idx, len(name)) {
				vocative = true
			}
			break
		}
		if !found {
			continue
		}
		if matched != "" {
			// Two different characters mentioned: ambiguous, no bypass.
			return "", false
		}
		matched = c.Key
	}

	if matched == "" || !vocative {
		return "", false
	}
	return matched, true
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}

// wordIndex returns the index of name in text as a whole word, or -1.
func wordIndex(text, name string) int {
	for start := 0; ; {
		idx := strings.Index(text[start:], name)
		if idx < 0 {
			return -1
		}
		idx += start
		end := idx + len(name)
		beforeOK := idx == 0 || !isWordRune(rune(text[idx-1]))
		afterOK := end == len(text) || !isWordRune(rune(text[end]))
		if beforeOK && afterOK {
			return idx
		}
		start = end
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isAddressee reports whether the name occurrence at [idx, idx+length) is
// in an addressee position: at the start of the message or adjacent to a
// vocative comma.
func isAddressee(text string, idx, length int) bool {
	if strings.TrimLeft(text[:idx], " \t") == "" {
		return true
	}
	before := strings.TrimRight(text[:idx], " \t")
	if strings.HasSuffix(before, ",") {
		return true
	}
	after := strings.TrimLeft(text[idx+length:], " \t")
	return strings.HasPrefix(after, ",")
}
