package domain

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// DateUnknown is the date token used when no directory carries a date.
const DateUnknown = "date-unknown"

const (
	placeholderOrganization = "Organization_Unknown"
	placeholderFolder       = "Folder_Unknown"
	placeholderDate         = "Date_Unknown"

	// MaxFinalNameRunes bounds generated file names, extension included.
	MaxFinalNameRunes = 200
	// MaxFinalNameBytes keeps a generated name, plus a `_N` collision
	// suffix, inside the 255-byte file name limit of common filesystems.
	MaxFinalNameBytes = 240
	minPartRunes      = 5
)

var dateSegment = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(_\d+)?$`)

// ExtractDateToken returns the deepest segment of relDir shaped like
// 2024-01-31 or 2024-01-31_2, or DateUnknown.
func ExtractDateToken(relDir string) string {
	segs := splitSegments(relDir)
	for i := len(segs) - 1; i >= 0; i-- {
		if dateSegment.MatchString(segs[i]) {
			return segs[i]
		}
	}
	return DateUnknown
}

// BuildFinalName composes `<org>_<date>_<folder><ext>` for a moved file. When
// the result exceeds MaxFinalNameRunes or MaxFinalNameBytes the folder part
// is shortened first, then the date, then the organization, none below five
// runes.
func BuildFinalName(original, org, folder, date string) string {
	ext := filepath.Ext(original)

	org = cleanPart(org)
	if org == "" || org == UnknownOrganization {
		org = placeholderOrganization
	}
	folder = cleanPart(folder)
	if folder == "" {
		folder = placeholderFolder
	}
	date = cleanPart(date)
	if date == "" {
		date = placeholderDate
	}

	compose := func() string { return org + "_" + date + "_" + folder + ext }

	name := compose()
	for _, part := range []*string{&folder, &date, &org} {
		for {
			excess := nameExcess(name)
			if excess <= 0 || RuneLen(*part) <= minPartRunes {
				break
			}
			*part = TruncateRunes(*part, max(RuneLen(*part)-excess, minPartRunes))
			name = compose()
		}
	}
	return name
}

// nameExcess is how many runes name must lose to fit both limits. A byte
// overflow is converted at four bytes per rune, rounded up, so a pass never
// cuts more than the overflow needs.
func nameExcess(name string) int {
	runes := RuneLen(name) - MaxFinalNameRunes
	bytes := (len(name) - MaxFinalNameBytes + 3) / 4
	if len(name) <= MaxFinalNameBytes {
		bytes = 0
	}
	return max(runes, bytes)
}

// DisambiguatedName inserts `_n` before the extension of name.
func DisambiguatedName(name string, n int) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + strconv.Itoa(n) + ext
}

func cleanPart(s string) string {
	return strings.Trim(strings.TrimSpace(SanitizeName(s)), "_")
}
