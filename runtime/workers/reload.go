package workers

import (
	"chat-bot/contract"
	"chat-bot/domain"
	"chat-bot/repositories"
	"context"
	"log/slog"
)

var _ contract.Worker = (*ReloadWorker)(nil)

type PrefixReloader interface {
	Reload(value string) (string, error)
}

// ReloadWorker applies prefix reload events. A rejected value never takes effect.
type ReloadWorker struct {
	prefix   PrefixReloader
	reloads  <-chan domain.ReloadEvent
	settings repositories.ISettingsRepository
	log      *slog.Logger
}

func NewReloadWorker(prefix PrefixReloader, reloads <-chan domain.ReloadEvent,
	settings repositories.ISettingsRepository, log *slog.Logger) *ReloadWorker {
	return &ReloadWorker{prefix: prefix, reloads: reloads, settings: settings, log: log}
}

func (w *ReloadWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.reloads:
			if !ok {
				return nil
			}
			w.Apply(event)
		}
	}
}

// Apply swaps the prefix and persists it. It reports whether the value was accepted.
func (w *ReloadWorker) Apply(event domain.ReloadEvent) bool {
	previous, err := w.prefix.Reload(event.Prefix)
	if err != nil {
		w.log.Warn("Prefix reload rejected", "value", event.Prefix, "source", event.Source, "error", err)
		return false
	}
	w.log.Info("Prefix reloaded", "from", previous, "to", event.Prefix, "source", event.Source)

	if w.settings != nil {
		if err = w.settings.SavePrefix(event.Prefix); err != nil {
			w.log.Warn("Failed to persist prefix", "value", event.Prefix, "error", err)
		}
	}
	return true
}
