package draft

import (
	"errors"
	"strings"
)

// ErrDuplicate rejects a draft whose prompt is already in the bank or
// earlier in the same batch.
var ErrDuplicate = errors.New("duplicate question text")

// textSet matches prompts case-insensitively with whitespace collapsed.
type textSet map[string]struct{}

func newTextSet(texts []string) textSet {
	s := make(textSet, len(texts))
	for _, t := range texts {
		s[normalize(t)] = struct{}{}
	}
	return s
}

// add inserts text and reports whether it was new.
func (s textSet) add(text string) bool {
	key := normalize(text)
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}

func normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
