package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic     = fmt.Errorf("worker panic")
	ErrInvalidCommand  = fmt.Errorf("invalid command")
	ErrCommandNotFound = fmt.Errorf("command not found")
	ErrNameCollision   = fmt.Errorf("command name collision")
	ErrMisconfigured   = fmt.Errorf("dispatcher misconfigured")
	ErrRegistryFrozen  = fmt.Errorf("%w: registry is frozen", ErrMisconfigured)
	ErrInvalidPrefix   = fmt.Errorf("invalid command prefix")
	ErrNoSuchNick      = fmt.Errorf("no such nick")
)

// NameCollisionError names the alias that was already claimed.
type NameCollisionError struct {
	Alias string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("%s: alias %q is already registered", ErrNameCollision, e.Alias)
}

func (e *NameCollisionError) Unwrap() error {
	return ErrNameCollision
}

// CommandNotFoundError names the first token that matched no handler.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrCommandNotFound, e.Name)
}

func (e *CommandNotFoundError) Unwrap() error {
	return ErrCommandNotFound
}

// IsFatal reports whether err must stop the process instead of being retried.
func IsFatal(err error) bool {
	return stderrors.Is(err, ErrMisconfigured) || stderrors.Is(err, ErrNameCollision)
}
