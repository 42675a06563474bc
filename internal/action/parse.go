package action

import (
	"strconv"
	"strings"
)

// ParseTrendingPage reads a 1-based page token. Anything that is not a
// positive integer is page 1.
func ParseTrendingPage(argument string) int {
	n, err := strconv.Atoi(strings.TrimSpace(argument))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseSearchArgument splits "keyword:page". The page is taken from the
// text after the last colon when that text is an integer; otherwise the
// whole argument is the keyword and the page is 0.
func ParseSearchArgument(argument string) (string, int) {
	if idx := strings.LastIndex(argument, ":"); idx >= 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(argument[idx+1:])); err == nil {
			return argument[:idx], max(n, 0)
		}
	}
	return argument, 0
}
