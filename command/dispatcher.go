package command

import (
	"chat-bot/contract"
	"chat-bot/domain"
	"chat-bot/errors"
	"chat-bot/tokenizer"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

type Status int

const (
	// StatusNotCommand means the message did not start with the prefix and was left alone.
	StatusNotCommand Status = iota
	// StatusDispatched means a handler was found and called.
	StatusDispatched
)

func (s Status) String() string {
	switch s {
	case StatusNotCommand:
		return "not_command"
	case StatusDispatched:
		return "dispatched"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result describes what Dispatch did with a message.
// Invocation is nil unless the handler was reached.
type Result struct {
	Status     Status
	Command    string
	Args       []string
	Invocation *Invocation
}

// Dispatcher routes prefixed messages to the handler registered for their first word.
type Dispatcher struct {
	mu       sync.RWMutex
	conn     contract.Connection
	log      *slog.Logger
	registry *Registry
	prefix   contract.PrefixSource
	factory  *Factory
}

func NewDispatcher(log *slog.Logger, registry *Registry, prefix contract.PrefixSource, factory *Factory) *Dispatcher {
	return &Dispatcher{
		log:      log,
		registry: registry,
		prefix:   prefix,
		factory:  factory,
	}
}

// Bind attaches the chat connection. Dispatch fails until it is called.
func (d *Dispatcher) Bind(conn contract.Connection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.conn = conn
}

func (d *Dispatcher) connection() contract.Connection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.conn
}

// Dispatch runs the handler matching msg.
//
// A message without the prefix yields StatusNotCommand and no error. Errors
// wrap errors.ErrMisconfigured, errors.ErrInvalidCommand or
// errors.ErrCommandNotFound; a failure of the handler itself is returned
// untouched.
func (d *Dispatcher) Dispatch(ctx context.Context, msg domain.InboundMessage) (Result, error) {
	conn := d.connection()
	if conn == nil {
		d.log.Error("Dispatch attempted without a bound connection", "sender", msg.Sender, "target", msg.Target)
		return Result{}, fmt.Errorf("%w: no connection bound", errors.ErrMisconfigured)
	}
	if !d.registry.Frozen() {
		d.log.Error("Dispatch attempted before the registry was frozen", "sender", msg.Sender, "target", msg.Target)
		return Result{}, fmt.Errorf("%w: registry is still open for registration", errors.ErrMisconfigured)
	}

	if strings.TrimSpace(msg.Raw) == "" {
		return Result{}, fmt.Errorf("%w: empty message", errors.ErrInvalidCommand)
	}

	prefix := d.prefix.Current()
	if !strings.HasPrefix(msg.Raw, prefix) {
		return Result{Status: StatusNotCommand}, nil
	}

	words, _ := tokenizer.Split(msg.Raw[len(prefix):])
	if len(words) == 0 {
		return Result{}, fmt.Errorf("%w: prefix without command", errors.ErrInvalidCommand)
	}
	name, args := words[0], words[1:]

	handler, ok := d.registry.Lookup(name)
	if !ok {
		return Result{Command: name, Args: args}, &errors.CommandNotFoundError{Name: name}
	}

	call, err := d.factory.FromMessageWithPrefix(ctx, conn, msg.Target, msg.Sender, msg.Raw, prefix)
	if err != nil {
		return Result{Command: name, Args: args}, err
	}

	d.log.Debug("Dispatching command", "command", name, "sender", msg.Sender, "target", msg.Target, "id", call.ID())
	result := Result{Status: StatusDispatched, Command: name, Args: args, Invocation: call}
	return result, handler.Handle(ctx, call, args...)
}
