package application

import (
	"context"
	"errors"
	"fmt"

	"docsorter/internal/domain"
)

// teach lets the operator add a rule while looking at entry. The new rule is
// persisted, then every waiting file is rescanned against it. The returned
// decision routes entry when the rule matches it, and is decisionNone when
// the operator cancelled or the key is not in this file.
func (s *Session) teach(ctx context.Context, entry domain.FileEntry, mode domain.SearchMode) (decision, error) {
	key, err := s.readKey(ctx, entry, mode)
	if err != nil {
		return decision{}, err
	}
	if key == "" {
		s.Console.Warn("empty key, nothing was added")
		return decision{}, nil
	}

	folder, err := s.readTeachFolder(ctx)
	if err != nil {
		return decision{}, err
	}
	if folder == "" {
		s.Console.Warn("no folder chosen, nothing was added")
		return decision{}, nil
	}

	rule, err := s.Registry.Add(ctx, key, folder, mode)
	if err != nil {
		var persistErr *PersistError
		if !errors.As(err, &persistErr) {
			s.Console.Warn(err.Error())
			return decision{}, nil
		}
		s.Console.Warn(fmt.Sprintf("rule is active for this run but was not saved: %v", err))
	}
	s.Stats.RulesAdded.Add(1)
	s.Console.Success(fmt.Sprintf("rule added: %s", domain.FormatRuleLine(rule)))

	matched := s.Classifier.MatchRule(ctx, entry.Path, rule)

	n := s.Backlog.RescanForRule(ctx, rule)
	s.Console.Info(fmt.Sprintf("the new rule sorted %d waiting files", n))

	if !s.Backlog.Contains(entry.Path) {
		return decision{kind: decisionGone}, nil
	}
	if matched || s.Classifier.MatchRule(ctx, entry.Path, rule) {
		return decision{kind: decisionResolved, folder: rule.Folder}, nil
	}
	s.Console.Warn("the new key does not match this file")
	return decision{}, nil
}

func (s *Session) readKey(ctx context.Context, entry domain.FileEntry, mode domain.SearchMode) (string, error) {
	if mode == domain.ModeFilename {
		s.Console.Heading("Teach a filename key")
		s.Console.Info(fmt.Sprintf("File name: %s", entry.Name()))
		s.Console.Info(fmt.Sprintf("Compared as: %s", domain.NormalizeFilename(entry.Path)))
		return s.ask(ctx, "Key found in the file name (empty to cancel)")
	}

	s.Console.Heading("Teach a content key")
	s.Console.Info(s.Previewer.Snippet(ctx, entry.Path))

	how, err := s.ask(ctx, "1 type the key, 2 pick a line from the preview")
	if err != nil {
		return "", err
	}
	if how == "2" {
		if err := s.pickLine(ctx, entry); err != nil {
			return "", err
		}
	}
	return s.ask(ctx, "Key found in the file text (empty to cancel)")
}

// pickLine shows preview lines and echoes the chosen one so the operator can
// type a key taken from it.
func (s *Session) pickLine(ctx context.Context, entry domain.FileEntry) error {
	lines, err := s.Previewer.Lines(ctx, entry.Path, pickPreviewChars, pickPreviewLines)
	if err != nil || len(lines) == 0 {
		s.Console.Warn("no preview lines available, type the key instead")
		return nil
	}
	s.Console.Options(lines)

	answer, err := s.ask(ctx, "Line number")
	if err != nil {
		return err
	}
	idx, err := ParseChoice(answer, len(lines))
	if err != nil {
		s.Console.Warn(err.Error() + ", type the key instead")
		return nil
	}

	picked := lines[idx]
	s.Console.Info(fmt.Sprintf("Selected: %s", picked))
	if s.Clipboard != nil {
		if err := s.Clipboard.WriteAll(picked); err != nil {
			s.Logger.Debug("clipboard unavailable", "error", err)
		} else {
			s.Console.Info("(copied to clipboard)")
		}
	}
	return nil
}

// readTeachFolder asks for the rule's folder. An empty answer cancels.
func (s *Session) readTeachFolder(ctx context.Context) (string, error) {
	for {
		how, err := s.ask(ctx, "Destination: 1 new folder, 2 existing folder (empty to cancel)")
		if err != nil || how == "" {
			return "", err
		}

		switch how {
		case "1":
			return s.ask(ctx, "New folder name")
		case "2":
			folders := s.Relocator.Folders().Sorted()
			if len(folders) == 0 {
				s.Console.Warn("no folders yet, create one first")
				continue
			}
			s.Console.Options(folders)
			for {
				answer, err := s.ask(ctx, "Folder number (empty to cancel)")
				if err != nil || answer == "" {
					return "", err
				}
				idx, err := ParseChoice(answer, len(folders))
				if err != nil {
					s.Console.Warn(err.Error())
					continue
				}
				return folders[idx], nil
			}
		default:
			s.Console.Warn((&InputError{Input: how, Reason: "choose 1 or 2"}).Error())
		}
	}
}
