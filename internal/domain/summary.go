package domain

import (
	"cmp"
	"slices"
	"time"
)

// Outcome records what happened to one file during a run.
type Outcome struct {
	Source       string
	Folder       string // empty when the file stayed in the source tree
	Destination  string
	Organization string
	Reason       string // why the file was not moved
}

// Moved reports whether the file left the source tree.
func (o Outcome) Moved() bool {
	return o.Destination != ""
}

// FolderCount is the number of files delivered to a folder.
type FolderCount struct {
	Folder string `yaml:"folder"`
	Files  int    `yaml:"files"`
}

// Summary is the end-of-run report.
type Summary struct {
	RunID            string        `yaml:"run_id"`
	GeneratedAt      time.Time     `yaml:"generated_at"`
	Mode             string        `yaml:"mode"`
	Source           string        `yaml:"source"`
	Output           string        `yaml:"output"`
	RulesPath        string        `yaml:"rules"`
	Rules            int           `yaml:"rule_count"`
	QuarantineFolder string        `yaml:"quarantine_folder"`
	Stats            StatsSnapshot `yaml:"stats"`
	Folders          []FolderCount `yaml:"folders"`
	Organizations    []string      `yaml:"organizations"`
	LeftInSource     []string      `yaml:"left_in_source"`
	BacklogRemaining int           `yaml:"backlog_remaining"`
	CleanedDirs      []string      `yaml:"cleaned_dirs,omitempty"`
	ActiveRules      []string      `yaml:"active_rules"`
	Interrupted      bool          `yaml:"interrupted,omitempty"`
}

// TallyOutcomes groups moved files per folder, busiest folder first, and
// collects the organizations seen on moved files and the files left behind.
func TallyOutcomes(outcomes []Outcome) (folders []FolderCount, orgs []string, left []string) {
	counts := make(map[string]int)
	seenOrg := make(map[string]bool)
	for _, o := range outcomes {
		if !o.Moved() {
			left = append(left, o.Source)
			continue
		}
		counts[o.Folder]++
		if o.Organization != "" && !seenOrg[o.Organization] {
			seenOrg[o.Organization] = true
			orgs = append(orgs, o.Organization)
		}
	}

	for f, n := range counts {
		folders = append(folders, FolderCount{Folder: f, Files: n})
	}
	slices.SortFunc(folders, func(a, b FolderCount) int {
		if c := cmp.Compare(b.Files, a.Files); c != 0 {
			return c
		}
		return cmp.Compare(a.Folder, b.Folder)
	})
	slices.Sort(orgs)
	slices.Sort(left)
	return folders, orgs, left
}
