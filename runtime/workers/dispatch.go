package workers

import (
	"chat-bot/command"
	"chat-bot/contract"
	"chat-bot/domain"
	"chat-bot/errors"
	"chat-bot/repositories"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var _ contract.Worker = (*DispatchWorker)(nil)

type Dispatcher interface {
	Dispatch(ctx context.Context, msg domain.InboundMessage) (command.Result, error)
}

// DispatchWorker handles inbound messages one at a time and decides, per
// error kind, what the user gets to see.
// Several workers share the same inbound channel, so messages are processed
// independently and may complete out of order.
type DispatchWorker struct {
	dispatcher Dispatcher
	conn       contract.Connection
	filter     contract.TextFilter
	inbound    <-chan domain.InboundMessage
	history    repositories.IInvocationRepository
	log        *slog.Logger
}

func NewDispatchWorker(
	dispatcher Dispatcher,
	conn contract.Connection,
	filter contract.TextFilter,
	inbound <-chan domain.InboundMessage,
	history repositories.IInvocationRepository,
	log *slog.Logger) *DispatchWorker {
	return &DispatchWorker{
		dispatcher: dispatcher,
		conn:       conn,
		filter:     filter,
		inbound:    inbound,
		history:    history,
		log:        log,
	}
}

func (w *DispatchWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping dispatch worker")
			return ctx.Err()
		case msg, ok := <-w.inbound:
			if !ok {
				w.log.Debug("Inbound channel is closed")
				return nil
			}
			if err := w.Handle(ctx, msg); err != nil {
				return err
			}
		}
	}
}

// Handle dispatches one message. Only fatal errors are returned.
func (w *DispatchWorker) Handle(ctx context.Context, msg domain.InboundMessage) error {
	result, err := w.dispatcher.Dispatch(ctx, msg)
	switch {
	case err == nil && result.Status == command.StatusNotCommand:
		return nil
	case err == nil:
		w.record(msg, result, domain.OutcomeSucceeded, nil)
		return nil
	case stderrors.Is(err, errors.ErrMisconfigured):
		w.log.Error("Dispatcher is misconfigured", "error", err)
		return err
	case stderrors.Is(err, errors.ErrInvalidCommand):
		w.log.Debug("Ignoring invalid command", "sender", msg.Sender, "target", msg.Target, "error", err)
		return nil
	case stderrors.Is(err, errors.ErrCommandNotFound):
		w.record(msg, result, domain.OutcomeNotFound, nil)
		w.reply(ctx, msg, fmt.Sprintf("unknown command: %s", result.Command))
		return nil
	default:
		w.log.Warn("Command failed", "command", result.Command, "sender", msg.Sender, "target", msg.Target, "error", err)
		w.record(msg, result, domain.OutcomeFailed, err)
		w.reply(ctx, msg, fmt.Sprintf("command %s failed", result.Command))
		return nil
	}
}

// reply answers on behalf of the worker. The text may quote what the user
// typed, so it goes through the same filter as handler replies.
func (w *DispatchWorker) reply(ctx context.Context, msg domain.InboundMessage, text string) {
	if w.filter != nil {
		text, _ = w.filter.Censor(text)
	}
	if err := command.Reply(ctx, w.conn, msg.Target, msg.Sender, text); err != nil {
		w.log.Warn("Reply failed", "target", msg.Target, "sender", msg.Sender, "error", err)
	}
}

func (w *DispatchWorker) record(msg domain.InboundMessage, result command.Result, outcome domain.Outcome, cause error) {
	if w.history == nil {
		return
	}
	record := domain.InvocationRecord{
		ID:      uuid.New(),
		Command: result.Command,
		Args:    result.Args,
		Sender:  msg.Sender,
		Target:  msg.Target,
		Outcome: outcome,
		At:      time.Now().UTC(),
	}
	if result.Invocation != nil {
		record.ID = result.Invocation.ID()
		record.At = result.Invocation.At()
	}
	if cause != nil {
		record.Error = cause.Error()
	}
	if err := w.history.StoreInvocation(record); err != nil {
		w.log.Warn("Failed to store invocation", "command", record.Command, "error", err)
	}
}
