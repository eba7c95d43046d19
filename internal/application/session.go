package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

// MaxListedFolders caps how many existing folders the menu prints. Any
// index of the full list is still accepted.
const MaxListedFolders = 20

type sessionState int

const (
	statePresenting sessionState = iota
	stateNewFolder
	statePickExisting
	stateQuarantine
	stateBulkFilenameScan
	stateTeachContent
	stateTeachFilename
	statePreviewing
	stateDeferred
)

var menuActions = []struct {
	label string
	state sessionState
}{
	{"Create a new folder", stateNewFolder},
	{"Pick an existing folder", statePickExisting},
	{"Send to the quarantine folder", stateQuarantine},
	{"Run filename rules over all waiting files", stateBulkFilenameScan},
	{"Teach a content key", stateTeachContent},
	{"Teach a filename key", stateTeachFilename},
	{"Preview file content", statePreviewing},
	{"Skip this file (leave it in the inbox)", stateDeferred},
}

type decisionKind int

const (
	decisionNone decisionKind = iota
	decisionResolved
	decisionDeferred
	decisionGone
)

type decision struct {
	kind   decisionKind
	folder string
}

// SessionDeps groups what an interactive session works with.
type SessionDeps struct {
	Registry   *KeyRegistry
	Classifier *Classifier
	Backlog    *Backlog
	Relocator  *Relocator
	Previewer  *Previewer
	Console    ports.Console
	Clipboard  ports.Clipboard // optional
	Stats      *domain.RunStats
	Logger     *slog.Logger
}

// SessionResult counts how the backlog entries ended.
type SessionResult struct {
	Resolved  int // moved by an operator decision
	Deferred  int // skipped by the operator
	Elsewhere int // sorted by a rescan or gone from disk before their turn
	Failed    int // decided but the move failed
}

// Session walks the backlog one entry at a time and lets the operator route
// each file or teach rules that sort it and its siblings.
type Session struct {
	SessionDeps
	quarantine string
}

// NewSession creates a session. quarantine is the folder offered for files
// nobody can classify.
func NewSession(deps SessionDeps, quarantine string) *Session {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Session{SessionDeps: deps, quarantine: quarantine}
}

// Run processes a snapshot of the backlog. It returns ErrAborted when the
// operator closes input; everything done until then stays done.
func (s *Session) Run(ctx context.Context) (SessionResult, error) {
	var res SessionResult
	entries := s.Backlog.Entries()
	total := len(entries)
	if total == 0 {
		return res, nil
	}
	s.Console.Heading(fmt.Sprintf("%d files need a decision", total))

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !s.Backlog.Contains(entry.Path) {
			res.Elsewhere++
			continue
		}
		if !s.Backlog.Exists(entry) {
			s.Backlog.Remove(entry.Path)
			s.Console.Info(fmt.Sprintf("%s no longer exists, skipping", entry.Name()))
			res.Elsewhere++
			continue
		}

		d, err := s.resolve(ctx, entry, i+1, total)
		if err != nil {
			return res, err
		}

		switch d.kind {
		case decisionGone:
			res.Elsewhere++
		case decisionDeferred:
			res.Deferred++
			s.Console.Info(fmt.Sprintf("%s left in the inbox", entry.Name()))
		case decisionResolved:
			dest, err := s.Relocator.Relocate(ctx, entry, d.folder)
			if err != nil {
				res.Failed++
				s.Console.Warn(fmt.Sprintf("could not move %s: %v", entry.Name(), err))
				continue
			}
			s.Backlog.Remove(entry.Path)
			s.Stats.InteractiveChoices.Add(1)
			s.Stats.ResolvedFromBacklog()
			res.Resolved++
			s.Console.Success(fmt.Sprintf("moved to %s", dest))
		}

		if (i+1)%10 == 0 {
			s.Logger.Info("interactive progress", "done", i+1, "total", total, "waiting", s.Backlog.Len())
		}
	}
	return res, nil
}

// resolve drives the state machine for one entry until it reaches a
// terminal decision.
func (s *Session) resolve(ctx context.Context, entry domain.FileEntry, pos, total int) (decision, error) {
	state := statePresenting
	redraw := true

	for {
		switch state {
		case statePresenting:
			if redraw {
				s.present(entry, pos, total)
				redraw = false
			}
			answer, err := s.ask(ctx, fmt.Sprintf("Action [1-%d]", len(menuActions)))
			if err != nil {
				return decision{}, err
			}
			idx, err := ParseChoice(answer, len(menuActions))
			if err != nil {
				s.Console.Warn(err.Error())
				continue
			}
			state = menuActions[idx].state

		case stateNewFolder:
			name, err := s.ask(ctx, "New folder name")
			if err != nil {
				return decision{}, err
			}
			if name == "" {
				s.Console.Warn("folder name cannot be empty")
				state = statePresenting
				continue
			}
			return decision{kind: decisionResolved, folder: name}, nil

		case statePickExisting:
			folder, ok, err := s.pickFolder(ctx)
			if err != nil {
				return decision{}, err
			}
			if !ok {
				state = statePresenting
				continue
			}
			return decision{kind: decisionResolved, folder: folder}, nil

		case stateQuarantine:
			return decision{kind: decisionResolved, folder: s.quarantine}, nil

		case stateBulkFilenameScan:
			n := s.Backlog.ScanForFilenameRules(ctx)
			s.Console.Info(fmt.Sprintf("filename rules sorted %d waiting files", n))
			if !s.Backlog.Contains(entry.Path) || !s.Backlog.Exists(entry) {
				s.Console.Success(fmt.Sprintf("%s was sorted by the scan", entry.Name()))
				return decision{kind: decisionGone}, nil
			}
			state, redraw = statePresenting, true

		case stateTeachContent, stateTeachFilename:
			mode := domain.ModeContent
			if state == stateTeachFilename {
				mode = domain.ModeFilename
			}
			d, err := s.teach(ctx, entry, mode)
			if err != nil {
				return decision{}, err
			}
			if d.kind != decisionNone {
				return d, nil
			}
			state, redraw = statePresenting, true

		case statePreviewing:
			s.Console.Heading("Preview")
			for _, line := range s.Previewer.Describe(ctx, entry) {
				s.Console.Info(line)
			}
			state, redraw = statePresenting, true

		case stateDeferred:
			return decision{kind: decisionDeferred}, nil
		}
	}
}

func (s *Session) present(entry domain.FileEntry, pos, total int) {
	s.Console.Heading(fmt.Sprintf("[%d/%d] %s", pos, total, entry.Name()))
	s.Console.Info(fmt.Sprintf("Location: %s", entry.RelDir))
	s.Console.Info(fmt.Sprintf("Organization: %s, date: %s", entry.Organization, entry.DateToken()))
	labels := make([]string, len(menuActions))
	for i, a := range menuActions {
		labels[i] = a.label
	}
	s.Console.Options(labels)
}

// pickFolder lists the known folders and reads a selection. ok is false
// when the operator gave an unusable answer and should see the menu again.
func (s *Session) pickFolder(ctx context.Context) (string, bool, error) {
	folders := s.Relocator.Folders().Sorted()
	if len(folders) == 0 {
		s.Console.Warn("no folders yet, create one first")
		return "", false, nil
	}

	shown := folders
	if len(shown) > MaxListedFolders {
		shown = shown[:MaxListedFolders]
	}
	s.Console.Options(shown)
	if extra := len(folders) - len(shown); extra > 0 {
		s.Console.Info(fmt.Sprintf("... and %d more", extra))
	}

	answer, err := s.ask(ctx, "Folder number")
	if err != nil {
		return "", false, err
	}
	idx, err := ParseChoice(answer, len(folders))
	if err != nil {
		s.Console.Warn(err.Error())
		return "", false, nil
	}
	return folders[idx], true, nil
}

// ask reads one trimmed answer and maps closed input to ErrAborted.
func (s *Session) ask(ctx context.Context, prompt string) (string, error) {
	answer, err := s.Console.Ask(ctx, prompt)
	if err != nil {
		if errors.Is(err, ports.ErrInputClosed) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
