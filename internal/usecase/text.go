package usecase

import "unicode/utf8"

// runeLen counts characters the way the platform does.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if runeLen(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
