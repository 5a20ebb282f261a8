// Package config holds the settings that can change while the bot is running.
package config

import (
	"chat-bot/errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const MaxPrefixLength = 16

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})
	if err != nil {
		panic(fmt.Sprintf("registering nospace validation: %v", err))
	}
	return v
}

// max counts characters (runes), not bytes.
type prefixRequest struct {
	Value string `validate:"required,max=16,nospace"`
}

// ValidatePrefix rejects values that can never start a command:
// empty strings, strings with whitespace and anything longer than
// MaxPrefixLength characters. Multi-byte characters count once.
func ValidatePrefix(value string) error {
	if err := validate.Struct(prefixRequest{Value: value}); err != nil {
		return fmt.Errorf("%w %q: %v", errors.ErrInvalidPrefix, value, err)
	}
	return nil
}

// Prefix is the command prefix shared by the dispatcher and the invocation factory.
// Readers always see the value in effect at the moment they call Current.
type Prefix struct {
	mu    sync.RWMutex
	value string
}

func NewPrefix(initial string) (*Prefix, error) {
	if err := ValidatePrefix(initial); err != nil {
		return nil, err
	}
	return &Prefix{value: initial}, nil
}

func (p *Prefix) Current() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Reload swaps the prefix and returns the previous one.
// An invalid value is rejected and the current prefix stays in effect.
func (p *Prefix) Reload(value string) (string, error) {
	if err := ValidatePrefix(value); err != nil {
		return p.Current(), err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	previous := p.value
	p.value = value
	return previous, nil
}
