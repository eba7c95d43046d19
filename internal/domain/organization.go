package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// UnknownOrganization is used when neither the directory layout nor the
// file name reveals who a document came from.
const UnknownOrganization = "Unknown"

const (
	maxOrgFromDir  = 30
	orgHeadRunes   = 20
	orgTailRunes   = 5
	maxOrgFromName = 30
)

// Patterns tried against the file name, in order, when the document sits
// directly in the source root. Cyrillic forms come from the inboxes this
// tool was built for, the English ones mirror them.
var orgNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:от|from)\s+([^_\-.]+)`),
	regexp.MustCompile(`(?i)(\p{Lu}\p{Ll}+)\s+(?:отчет|report)`),
	regexp.MustCompile(`(?i)(\p{Lu}+[\p{L}\p{N}_\s]+)_(?:отчет|report)`),
}

// ExtractOrganization derives the sender organization for a file. relDir is
// the file's directory relative to the source root: its first segment names
// the organization. Files in the root itself fall back to name patterns.
func ExtractOrganization(relDir, filename string) string {
	if first := firstSegment(relDir); first != "" {
		org := strings.Trim(SanitizeName(first), "_")
		if RuneLen(org) > maxOrgFromDir {
			r := []rune(org)
			org = string(r[:orgHeadRunes]) + "..." + string(r[len(r)-orgTailRunes:])
		}
		if org != "" {
			return org
		}
		return UnknownOrganization
	}

	for _, re := range orgNamePatterns {
		m := re.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		org := strings.Trim(strings.TrimSpace(SanitizeName(m[1])), "_")
		if org != "" {
			return TruncateRunes(org, maxOrgFromName)
		}
	}
	return UnknownOrganization
}

func firstSegment(relDir string) string {
	relDir = filepath.ToSlash(filepath.Clean(relDir))
	if relDir == "." || relDir == "" || relDir == "/" {
		return ""
	}
	segs := splitSegments(relDir)
	if len(segs) == 0 {
		return ""
	}
	return segs[0]
}

func splitSegments(relDir string) []string {
	var segs []string
	for _, s := range strings.Split(filepath.ToSlash(relDir), "/") {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	return segs
}
