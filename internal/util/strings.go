package util

import "strings"

func IsAscii(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

// AddSpace Adds a space, if not present, between ASCII Characters and Non-ASCII Characters.
// Notice that Non-ASCII characters could be multi-byte unicode sequence.
// For example, "データid" -> "データ id"
func AddSpace(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 && IsAscii(s[i:i+1]) != IsAscii(s[i-1:i]) && s[i-1] != ' ' && s[i] != ' ' {
			b.WriteByte(' ')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
