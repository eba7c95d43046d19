package domain

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var filenameSeparators = strings.NewReplacer("_", " ", "-", " ", ".", " ")

// NormalizeFilename prepares a file name for filename-mode matching: the
// extension is dropped, `_`, `-` and `.` become spaces and the result is
// lowercased. Names are NFC-normalized first so decomposed Cyrillic and
// accented names match keys typed on a keyboard.
func NormalizeFilename(name string) string {
	name = norm.NFC.String(filepath.Base(name))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ToLower(filenameSeparators.Replace(name))
}

// MatchesFilenameKey reports whether a normalized name contains the key,
// compared in lowercase.
func MatchesFilenameKey(normalized, key string) bool {
	key = strings.ToLower(norm.NFC.String(key))
	if key == "" {
		return false
	}
	return strings.Contains(normalized, key)
}

var illegalNameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeName replaces characters that are not allowed in file names.
func SanitizeName(s string) string {
	return illegalNameChars.ReplaceAllString(s, "_")
}

// TruncateRunes cuts s to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// RuneLen is the length of s in runes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
