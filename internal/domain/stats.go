package domain

import "sync/atomic"

// RunStats holds the counters of one sorting run. All fields are safe for
// concurrent use.
type RunStats struct {
	Scanned            atomic.Int64
	Processed          atomic.Int64
	Sorted             atomic.Int64
	NotFound           atomic.Int64
	ContentMatches     atomic.Int64
	FilenameMatches    atomic.Int64
	InteractiveChoices atomic.Int64
	Quarantined        atomic.Int64
	Moved              atomic.Int64
	RulesAdded         atomic.Int64
	Errors             atomic.Int64
}

// StatsSnapshot is a point-in-time copy of RunStats.
type StatsSnapshot struct {
	Scanned            int64 `yaml:"scanned"`
	Processed          int64 `yaml:"processed"`
	Sorted             int64 `yaml:"sorted"`
	NotFound           int64 `yaml:"not_found"`
	ContentMatches     int64 `yaml:"content_matches"`
	FilenameMatches    int64 `yaml:"filename_matches"`
	InteractiveChoices int64 `yaml:"interactive_choices"`
	Quarantined        int64 `yaml:"quarantined"`
	Moved              int64 `yaml:"moved"`
	RulesAdded         int64 `yaml:"rules_added"`
	Errors             int64 `yaml:"errors"`
}

// Snapshot copies the current counter values.
func (s *RunStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Scanned:            s.Scanned.Load(),
		Processed:          s.Processed.Load(),
		Sorted:             s.Sorted.Load(),
		NotFound:           s.NotFound.Load(),
		ContentMatches:     s.ContentMatches.Load(),
		FilenameMatches:    s.FilenameMatches.Load(),
		InteractiveChoices: s.InteractiveChoices.Load(),
		Quarantined:        s.Quarantined.Load(),
		Moved:              s.Moved.Load(),
		RulesAdded:         s.RulesAdded.Load(),
		Errors:             s.Errors.Load(),
	}
}

// ResolvedFromBacklog records a backlog entry that has been sorted after all.
func (s *RunStats) ResolvedFromBacklog() {
	s.Sorted.Add(1)
	s.NotFound.Add(-1)
}
