// Package runtime wires the dispatch engine to its workers.
// It orchestrates the bot without containing command logic.
package runtime

import (
	"chat-bot/command"
	"chat-bot/config"
	"chat-bot/contract"
	"chat-bot/domain"
	"chat-bot/errors"
	"chat-bot/repositories"
	"chat-bot/runtime/workers"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type Bot struct {
	mu         sync.Mutex
	log        *slog.Logger
	numWorkers int
	supervisor *workers.Supervisor
	registry   *command.Registry
	dispatcher *command.Dispatcher
	filter     contract.TextFilter
	prefix     *config.Prefix
	settings   repositories.ISettingsRepository
	history    repositories.IInvocationRepository
	conn       contract.Connection
	extra      []contract.Worker
	inbound    chan domain.InboundMessage
	reloads    chan domain.ReloadEvent
	done       chan struct{}
}

func NewBot(log *slog.Logger, supervisor *workers.Supervisor,
	registry *command.Registry, dispatcher *command.Dispatcher, filter contract.TextFilter, prefix *config.Prefix,
	settings repositories.ISettingsRepository, history repositories.IInvocationRepository,
	numWorkers, bufferSize int) *Bot {
	return &Bot{
		log:        log,
		numWorkers: max(numWorkers, 1),
		supervisor: supervisor,
		registry:   registry,
		dispatcher: dispatcher,
		filter:     filter,
		prefix:     prefix,
		settings:   settings,
		history:    history,
		inbound:    make(chan domain.InboundMessage, bufferSize),
		reloads:    make(chan domain.ReloadEvent, 1),
		done:       make(chan struct{}),
	}
}

// Attach binds the chat connection to the dispatcher and to the reply path.
func (b *Bot) Attach(conn contract.Connection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conn = conn
	b.dispatcher.Bind(conn)
}

// AddWorkers runs extra workers (typically the connection's reader) under the bot's supervisor.
func (b *Bot) AddWorkers(w ...contract.Worker) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.extra = append(b.extra, w...)
}

// Inbound is where the connection pushes received messages.
func (b *Bot) Inbound() chan<- domain.InboundMessage {
	return b.inbound
}

// Reload queues a prefix change. The value is validated by the reload worker.
func (b *Bot) Reload(value, source string) {
	select {
	case b.reloads <- domain.ReloadEvent{Prefix: value, Source: source}:
	default:
		b.log.Warn("Reload channel full, dropping prefix reload", "value", value, "source", source)
	}
}

// Start restores the persisted prefix, then runs the dispatch and reload
// workers under supervision. It fails when the bot cannot dispatch anything.
func (b *Bot) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return fmt.Errorf("%w: bot started without a connection", errors.ErrMisconfigured)
	}
	b.registry.Freeze()
	b.restorePrefix()

	for i := 0; i < b.numWorkers; i++ {
		b.supervisor.Add(workers.NewDispatchWorker(b.dispatcher, b.conn, b.filter, b.inbound, b.history, b.log))
	}
	b.supervisor.Add(workers.NewReloadWorker(b.prefix, b.reloads, b.settings, b.log))
	b.supervisor.Add(b.extra...)

	b.log.Info("Starting bot", "workers", b.numWorkers, "prefix", b.prefix.Current(), "commands", len(b.registry.Aliases()))
	go func() {
		defer close(b.done)
		b.supervisor.Run(ctx)
	}()
	return nil
}

// Done is closed once every supervised worker has stopped.
func (b *Bot) Done() <-chan struct{} {
	return b.done
}

// Err returns the fatal error that stopped the bot, if any.
func (b *Bot) Err() error {
	return b.supervisor.Err()
}

func (b *Bot) Stop() {
	b.supervisor.Stop()
}

func (b *Bot) restorePrefix() {
	if b.settings == nil {
		return
	}
	persisted, found, err := b.settings.LoadPrefix()
	switch {
	case err != nil:
		b.log.Warn("Failed to load persisted prefix", "error", err)
	case !found:
		return
	default:
		if _, err = b.prefix.Reload(persisted); err != nil {
			b.log.Warn("Ignoring invalid persisted prefix", "value", persisted, "error", err)
		}
	}
}
