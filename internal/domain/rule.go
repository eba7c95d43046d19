package domain

import (
	"fmt"
	"strings"
)

// SearchMode selects where a rule's key is looked for
type SearchMode int

const (
	ModeContent  SearchMode = iota // key is searched inside the document text
	ModeFilename                   // key is searched inside the normalized file name
)

func (m SearchMode) String() string {
	switch m {
	case ModeFilename:
		return "filename"
	default:
		return "content"
	}
}

// ParseSearchMode parses the textual form of a mode, ignoring case and padding.
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "content":
		return ModeContent, nil
	case "filename":
		return ModeFilename, nil
	default:
		return ModeContent, fmt.Errorf("unknown search mode: %q", s)
	}
}

// SearchRule maps a search key to the folder that matching files are routed to.
type SearchRule struct {
	Key    string
	Folder string
	Mode   SearchMode
}

// Validate reports whether the rule has a usable key and folder.
func (r SearchRule) Validate() error {
	if strings.TrimSpace(r.Key) == "" {
		return fmt.Errorf("search key is empty")
	}
	if strings.TrimSpace(r.Folder) == "" {
		return fmt.Errorf("folder for key %q is empty", r.Key)
	}
	return nil
}

// IsBare is true when the rule can be written as a single key on its line.
func (r SearchRule) IsBare() bool {
	return r.Key == r.Folder && r.Mode == ModeContent
}

// RuleSeparator splits the fields of a rule line. Keys and folders cannot
// contain it.
const RuleSeparator = "|"

// ParseRuleLine parses one line of the rule file. The accepted shapes are
//
//	KEY
//	KEY | FOLDER
//	KEY | FOLDER | MODE
//
// ok is false for blank lines and for lines that cannot form a valid rule,
// including lines with an unknown mode.
func ParseRuleLine(line string) (rule SearchRule, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return SearchRule{}, false
	}

	parts := strings.SplitN(line, RuleSeparator, 3)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		rule = SearchRule{Key: parts[0], Folder: parts[0], Mode: ModeContent}
	case 2:
		rule = SearchRule{Key: parts[0], Folder: parts[1], Mode: ModeContent}
	default:
		mode, err := ParseSearchMode(parts[2])
		if err != nil {
			return SearchRule{}, false
		}
		rule = SearchRule{Key: parts[0], Folder: parts[1], Mode: mode}
	}

	if rule.Validate() != nil {
		return SearchRule{}, false
	}
	return rule, true
}

// FormatRuleLine renders a rule in the form ParseRuleLine reads back.
func FormatRuleLine(r SearchRule) string {
	if r.IsBare() {
		return r.Key
	}
	return fmt.Sprintf("%s | %s | %s", r.Key, r.Folder, r.Mode)
}

// Match describes which rule claimed a file.
type Match struct {
	Key    string
	Folder string
	Mode   SearchMode
}

// MatchOf builds the match result for a rule.
func MatchOf(r SearchRule) Match {
	return Match{Key: r.Key, Folder: r.Folder, Mode: r.Mode}
}
