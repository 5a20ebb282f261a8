package command

import (
	"chat-bot/errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/samber/lo"
)

// Registry maps aliases to handlers.
// It is filled once at startup, then frozen before the first dispatch.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	frozen   bool
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds every alias to handler.
// Either all aliases are added or none: an alias that is already taken, or
// that appears twice in the call, fails the whole registration with a
// *errors.NameCollisionError.
func (r *Registry) Register(aliases []string, handler Handler) error {
	if !invocable(handler) {
		return fmt.Errorf("%w: handler for %v is not callable", errors.ErrInvalidCommand, aliases)
	}
	if len(aliases) == 0 {
		return fmt.Errorf("%w: no alias given", errors.ErrInvalidCommand)
	}
	if bad, found := lo.Find(aliases, func(alias string) bool {
		return alias == "" || strings.ContainsFunc(alias, unicode.IsSpace)
	}); found {
		return fmt.Errorf("%w: alias %q cannot be typed as a single word", errors.ErrInvalidCommand, bad)
	}
	if duplicates := lo.FindDuplicates(aliases); len(duplicates) > 0 {
		return &errors.NameCollisionError{Alias: duplicates[0]}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.ErrRegistryFrozen
	}
	for _, alias := range aliases {
		if _, exists := r.handlers[alias]; exists {
			return &errors.NameCollisionError{Alias: alias}
		}
	}
	for _, alias := range aliases {
		r.handlers[alias] = handler
	}
	return nil
}

// Lookup returns the handler bound to alias.
// A missing alias is an ordinary outcome, reported through ok.
func (r *Registry) Lookup(alias string) (handler Handler, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok = r.handlers[alias]
	return handler, ok
}

// Aliases returns every registered alias in lexical order.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	aliases := lo.Keys(r.handlers)
	slices.Sort(aliases)
	return aliases
}

// Freeze rejects any later registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Reset drops every registration and unfreezes the registry.
// Only meant for isolated test runs.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = make(map[string]Handler)
	r.frozen = false
}
