// Package target parses the function tokens given on the command line.
package target

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// countSep separates a function name from its requested stream count.
const countSep = "#"

// Target is a function name plus the number of streams requested for it.
type Target struct {
	FunctionName string
	Count        int
}

// String returns the token form of the target, e.g. "DocumentEvent#2".
func (t Target) String() string {
	return fmt.Sprintf("%s%s%d", t.FunctionName, countSep, t.Count)
}

// Parse converts a token of the form "name" or "name#N" into a Target.
// Parse never fails. The count is the leading run of digits after the first "#",
// so "f#2abc" and "f#3.5" ask for 2 and 3 streams. A missing, negative or zero count falls back to 1.
func Parse(token string) Target {
	name, suffix, found := strings.Cut(token, countSep)
	if !found {
		return Target{FunctionName: name, Count: 1}
	}
	return Target{FunctionName: name, Count: leadingCount(suffix)}
}

func leadingCount(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	s = strings.TrimPrefix(s, "+")

	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(s)
	}

	count, err := strconv.Atoi(s[:end])
	if err != nil || count < 1 {
		return 1
	}
	return count
}

// ParseAll parses every token, preserving order.
func ParseAll(tokens []string) []Target {
	targets := make([]Target, len(tokens))
	for i, tok := range tokens {
		targets[i] = Parse(tok)
	}
	return targets
}
