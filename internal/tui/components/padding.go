package components

import "strings"

const padCacheSize = 64

var padCache = func() [padCacheSize + 1]string {
	var c [padCacheSize + 1]string
	for i := range c {
		c[i] = strings.Repeat(" ", i)
	}
	return c
}()

// Pad returns n spaces.
func Pad(n int) string {
	switch {
	case n <= 0:
		return ""
	case n <= padCacheSize:
		return padCache[n]
	default:
		return strings.Repeat(" ", n)
	}
}
