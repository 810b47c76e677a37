// Package utils provides small, generic helpers shared across layers.
// Nothing here depends on the domain or on the HTTP framework.
package utils

import "strconv"

// AtoiDefault parses s as an int, falling back to def when s is empty or not
// a number. Query parameters like ?page=2 arrive as strings; this keeps the
// parse-or-default dance out of the handlers.
func AtoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ClampInt bounds n to [lo, hi].
func ClampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
