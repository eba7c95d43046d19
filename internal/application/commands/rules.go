package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"docsorter/internal/application"
	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

// ListRulesCommand lists the rules of a rule file in registry order
type ListRulesCommand struct {
	store ports.RuleStore
	Mode  *domain.SearchMode // nil lists every mode
}

// NewListRulesCommand creates a new ListRulesCommand
func NewListRulesCommand(store ports.RuleStore) *ListRulesCommand {
	return &ListRulesCommand{store: store}
}

// Execute runs the list rules command
func (c *ListRulesCommand) Execute(ctx context.Context) ([]domain.SearchRule, error) {
	registry := application.NewKeyRegistry(c.store, slog.Default())
	if err := registry.Load(ctx); err != nil {
		return nil, err
	}
	if c.Mode != nil {
		return registry.RulesByMode(*c.Mode), nil
	}
	return registry.Rules(), nil
}

// AddRuleResult contains the result of adding a rule
type AddRuleResult struct {
	Rule     domain.SearchRule
	Replaced bool
	Message  string
}

// AddRuleCommand adds one rule to a rule file, creating the file if needed
type AddRuleCommand struct {
	store  ports.RuleStore
	logger *slog.Logger
	Key    string
	Folder string
	Mode   domain.SearchMode
}

// NewAddRuleCommand creates a new AddRuleCommand. An empty folder means the
// key names its own folder.
func NewAddRuleCommand(store ports.RuleStore, logger *slog.Logger, key, folder string, mode domain.SearchMode) *AddRuleCommand {
	if folder == "" {
		folder = key
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AddRuleCommand{store: store, logger: logger, Key: key, Folder: folder, Mode: mode}
}

// Validate checks if the add operation is valid
func (c *AddRuleCommand) Validate() error {
	if err := application.ValidateRuleField("key", c.Key); err != nil {
		return err
	}
	return application.ValidateRuleField("folder", c.Folder)
}

// Execute runs the add rule command
func (c *AddRuleCommand) Execute(ctx context.Context) (*AddRuleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	registry := application.NewKeyRegistry(c.store, c.logger)
	if err := registry.Load(ctx); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	_, replaced := registry.RuleFor(c.Key)
	rule, err := registry.Add(ctx, c.Key, c.Folder, c.Mode)
	if err != nil {
		return nil, err
	}

	verb := "Added"
	if replaced {
		verb = "Replaced"
	}
	return &AddRuleResult{
		Rule:     rule,
		Replaced: replaced,
		Message:  fmt.Sprintf("%s rule: %s", verb, domain.FormatRuleLine(rule)),
	}, nil
}

// EditRulesResult contains the outcome of an edit session
type EditRulesResult struct {
	Path    string
	Rules   int
	Message string
}

// EditRulesCommand opens the rule file in an editor, creating it first when
// missing, and re-reads it afterwards
type EditRulesCommand struct {
	store  ports.RuleStore
	editor ports.EditorOpener
}

// NewEditRulesCommand creates a new EditRulesCommand
func NewEditRulesCommand(store ports.RuleStore, editor ports.EditorOpener) *EditRulesCommand {
	return &EditRulesCommand{store: store, editor: editor}
}

// Execute runs the edit rules command
func (c *EditRulesCommand) Execute(ctx context.Context) (*EditRulesResult, error) {
	path := c.store.Location()
	if _, err := c.store.Load(ctx); errors.Is(err, fs.ErrNotExist) {
		if err := c.store.Save(ctx, nil); err != nil {
			return nil, &application.PersistError{Path: path, Err: err}
		}
	}

	if err := c.editor.OpenFile(ctx, path); err != nil {
		return nil, err
	}

	registry := application.NewKeyRegistry(c.store, slog.Default())
	if err := registry.Load(ctx); err != nil {
		return nil, err
	}
	return &EditRulesResult{
		Path:    path,
		Rules:   registry.Len(),
		Message: fmt.Sprintf("%s now has %d valid rules", path, registry.Len()),
	}, nil
}
