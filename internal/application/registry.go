package application

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"docsorter/internal/domain"
	"docsorter/internal/ports"
)

// KeyRegistry is the ordered set of search rules. Registry order decides
// which rule wins when several match the same file.
type KeyRegistry struct {
	mu     sync.RWMutex
	rules  *orderedmap.OrderedMap[string, domain.SearchRule]
	store  ports.RuleStore
	logger *slog.Logger
}

// NewKeyRegistry creates an empty registry backed by store.
func NewKeyRegistry(store ports.RuleStore, logger *slog.Logger) *KeyRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeyRegistry{
		rules:  orderedmap.New[string, domain.SearchRule](),
		store:  store,
		logger: logger,
	}
}

// Load replaces the registry contents with the rules in the store. An empty
// store loads successfully; callers decide whether zero rules is usable.
func (r *KeyRegistry) Load(ctx context.Context) error {
	rules, err := r.store.Load(ctx)
	if err != nil {
		return &ConfigError{Path: r.store.Location(), Reason: "cannot read rule file", Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = orderedmap.New[string, domain.SearchRule]()
	for _, rule := range rules {
		r.rules.Set(rule.Key, rule)
	}
	r.logger.Info("rules loaded", "path", r.store.Location(), "count", r.rules.Len())
	return nil
}

// Add inserts or replaces a rule and writes the whole registry back to the
// store. A replaced key keeps its position. When the write fails the rule
// stays in memory and a *PersistError is returned with it.
func (r *KeyRegistry) Add(ctx context.Context, key, folder string, mode domain.SearchMode) (domain.SearchRule, error) {
	if err := ValidateRuleField("key", key); err != nil {
		return domain.SearchRule{}, err
	}
	if err := ValidateRuleField("folder", folder); err != nil {
		return domain.SearchRule{}, err
	}
	rule := domain.SearchRule{
		Key:    strings.TrimSpace(key),
		Folder: strings.TrimSpace(folder),
		Mode:   mode,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules.Set(rule.Key, rule)

	if err := r.store.Save(ctx, r.snapshotLocked()); err != nil {
		r.logger.Error("saving rules failed", "path", r.store.Location(), "error", err)
		return rule, &PersistError{Path: r.store.Location(), Err: err}
	}
	r.logger.Info("rule added", "key", rule.Key, "folder", rule.Folder, "mode", rule.Mode.String())
	return rule, nil
}

// RuleFor looks a rule up by its exact key.
func (r *KeyRegistry) RuleFor(key string) (domain.SearchRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules.Get(key)
}

// RulesByMode returns the rules of one mode in registry order.
func (r *KeyRegistry) RulesByMode(mode domain.SearchMode) []domain.SearchRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.SearchRule
	for pair := r.rules.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Mode == mode {
			out = append(out, pair.Value)
		}
	}
	return out
}

// Rules returns every rule in registry order.
func (r *KeyRegistry) Rules() []domain.SearchRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Len is the number of rules.
func (r *KeyRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules.Len()
}

// Location names the backing store.
func (r *KeyRegistry) Location() string {
	return r.store.Location()
}

func (r *KeyRegistry) snapshotLocked() []domain.SearchRule {
	out := make([]domain.SearchRule, 0, r.rules.Len())
	for pair := r.rules.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}
