package runtime

import (
	"chat-bot/command"
	"chat-bot/config"
	"chat-bot/domain"
	"chat-bot/errors"
	"chat-bot/mocks"
	"chat-bot/runtime/workers"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type botFixture struct {
	bot      *Bot
	registry *command.Registry
	prefix   *config.Prefix
	conn     *mocks.MockConnection
	settings *mocks.MockISettingsRepository
	history  *mocks.MockIInvocationRepository
}

func newBotFixture(t *testing.T) botFixture {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	conn := mocks.NewMockConnection(ctrl)
	settings := mocks.NewMockISettingsRepository(ctrl)
	history := mocks.NewMockIInvocationRepository(ctrl)

	prefix, err := config.NewPrefix("!")
	require.NoError(t, err)
	registry := command.NewRegistry()
	dispatcher := command.NewDispatcher(log, registry, prefix, command.NewFactory(prefix, nil))
	bot := NewBot(log, workers.NewSupervisor(log, 10*time.Millisecond),
		registry, dispatcher, nil, prefix, settings, history, 2, 8)

	return botFixture{bot: bot, registry: registry, prefix: prefix, conn: conn, settings: settings, history: history}
}

func TestBot_Start_Without_Connection(t *testing.T) {
	req := require.New(t)
	f := newBotFixture(t)

	err := f.bot.Start(context.Background())

	req.ErrorIs(err, errors.ErrMisconfigured)
}

func TestBot_Dispatches_Inbound_Messages(t *testing.T) {
	req := require.New(t)
	f := newBotFixture(t)
	req.NoError(f.registry.Register([]string{"ping"}, command.HandlerFunc(
		func(ctx context.Context, call *command.Invocation, _ ...string) error {
			return call.Reply(ctx, "pong")
		})))

	// Given a persisted prefix "."
	f.settings.EXPECT().LoadPrefix().Return(".", true, nil).Times(1)

	f.conn.EXPECT().WhoIs(gomock.Any(), "Bob").Return(domain.Identity{Nick: "Bob"}, nil).Times(1)
	f.conn.EXPECT().IsChannel("#lobby").Return(true).Times(1)
	f.history.EXPECT().StoreInvocation(gomock.Any()).Return(nil).Times(1)

	sent := make(chan string, 1)
	f.conn.EXPECT().
		SendMessage(gomock.Any(), "#lobby", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, text string) error {
			sent <- text
			return nil
		}).
		Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.bot.Attach(f.conn)
	req.NoError(f.bot.Start(ctx))

	// Then the registry is frozen and the persisted prefix is in effect
	req.True(f.registry.Frozen())
	req.Equal(".", f.prefix.Current())

	// When messages arrive
	f.bot.Inbound() <- domain.InboundMessage{Raw: "!ping", Sender: "Bob", Target: "#lobby"}
	f.bot.Inbound() <- domain.InboundMessage{Raw: ".ping", Sender: "Bob", Target: "#lobby"}

	// Then only the one with the current prefix is answered
	select {
	case text := <-sent:
		req.Equal("pong", text)
	case <-time.After(time.Second):
		req.Fail("Bot should have answered .ping")
	}

	f.bot.Stop()
	select {
	case <-f.bot.Done():
	case <-time.After(time.Second):
		req.Fail("Bot should stop")
	}
	req.NoError(f.bot.Err())
}

func TestBot_Reload(t *testing.T) {
	req := require.New(t)
	f := newBotFixture(t)

	f.settings.EXPECT().LoadPrefix().Return("", false, nil).Times(1)

	saved := make(chan string, 1)
	f.settings.EXPECT().
		SavePrefix(gomock.Any()).
		DoAndReturn(func(value string) error {
			saved <- value
			return nil
		}).
		Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.bot.Attach(f.conn)
	req.NoError(f.bot.Start(ctx))
	f.bot.Reload(".", "test")

	select {
	case value := <-saved:
		req.Equal(".", value)
	case <-time.After(time.Second):
		req.Fail("Reload should have been persisted")
	}
	req.Equal(".", f.prefix.Current())
}
