package command

import (
	"chat-bot/config"
	"chat-bot/domain"
	"chat-bot/errors"
	"chat-bot/mocks"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func alice() domain.Identity {
	return domain.Identity{Nick: "Alice", User: "alice", Host: "wonder.land", Account: "alice"}
}

func TestFactory_FromMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockConnection(ctrl)
	conn.EXPECT().WhoIs(gomock.Any(), "Alice").Return(alice(), nil).AnyTimes()

	prefix, err := config.NewPrefix("!")
	require.NoError(t, err)
	factory := NewFactory(prefix, nil)

	t.Run("Prefixed message", func(t *testing.T) {
		req := require.New(t)
		inv, err := factory.FromMessage(context.Background(), conn, "#lobby", "Alice", "!say pink  fluffy unicorns")
		req.NoError(err)

		req.True(inv.Prefixed())
		req.Equal("say", inv.Command())
		req.Equal([]string{"say", "pink", "fluffy", "unicorns"}, inv.Words())
		req.Equal([]string{"say pink fluffy unicorns", "pink fluffy unicorns", "fluffy unicorns", "unicorns"}, inv.WordsEOL())
		req.Equal("pink fluffy unicorns", inv.WordEOL(1))
		req.Equal(alice(), inv.Sender())
		req.Equal("#lobby", inv.Target())
		req.NotEqual(uuid.Nil, inv.ID())
		req.False(inv.At().IsZero())
	})

	t.Run("Plain message", func(t *testing.T) {
		req := require.New(t)
		inv, err := factory.FromMessage(context.Background(), conn, "#lobby", "Alice", "say hello")
		req.NoError(err)

		req.False(inv.Prefixed())
		req.Equal("", inv.Command())
		req.Equal([]string{"say", "hello"}, inv.Words())
	})

	t.Run("Out of range words", func(t *testing.T) {
		req := require.New(t)
		inv, err := factory.FromMessage(context.Background(), conn, "#lobby", "Alice", "!ping")
		req.NoError(err)

		req.Equal("", inv.Word(3))
		req.Equal("", inv.WordEOL(-1))
	})

	t.Run("Current prefix is read at every call", func(t *testing.T) {
		req := require.New(t)
		local, err := config.NewPrefix("!")
		req.NoError(err)
		f := NewFactory(local, nil)

		_, err = local.Reload(".")
		req.NoError(err)

		inv, err := f.FromMessage(context.Background(), conn, "#lobby", "Alice", "!ping")
		req.NoError(err)
		req.False(inv.Prefixed())

		inv, err = f.FromMessage(context.Background(), conn, "#lobby", "Alice", ".ping")
		req.NoError(err)
		req.True(inv.Prefixed())
		req.Equal("ping", inv.Command())
	})
}

func TestFactory_Missing_Connection(t *testing.T) {
	req := require.New(t)
	prefix, err := config.NewPrefix("!")
	req.NoError(err)

	inv, err := NewFactory(prefix, nil).FromMessage(context.Background(), nil, "#lobby", "Alice", "!ping")

	req.ErrorIs(err, errors.ErrMisconfigured)
	req.Nil(inv)
}

func TestInvocation_Is_Immutable(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockConnection(ctrl)
	conn.EXPECT().WhoIs(gomock.Any(), "Alice").Return(alice(), nil)
	prefix, err := config.NewPrefix("!")
	req.NoError(err)

	inv, err := NewFactory(prefix, nil).FromMessage(context.Background(), conn, "#lobby", "Alice", "!greet Bob")
	req.NoError(err)

	// When a caller alters the returned slices
	words := inv.Words()
	words[1] = "Mallory"
	eol := inv.WordsEOL()
	eol[0] = "tampered"

	// Then the invocation is unchanged
	req.Equal([]string{"greet", "Bob"}, inv.Words())
	req.Equal([]string{"greet Bob", "Bob"}, inv.WordsEOL())
}

func TestInvocation_Reply(t *testing.T) {
	t.Run("Channel target answers in the channel", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		conn := mocks.NewMockConnection(ctrl)
		prefix, err := config.NewPrefix("!")
		req.NoError(err)

		conn.EXPECT().WhoIs(gomock.Any(), "Alice").Return(alice(), nil)
		conn.EXPECT().IsChannel("#lobby").Return(true)
		conn.EXPECT().SendMessage(gomock.Any(), "#lobby", "pong").Return(nil).Times(1)

		inv, err := NewFactory(prefix, nil).FromMessage(context.Background(), conn, "#lobby", "Alice", "!ping")
		req.NoError(err)
		req.NoError(inv.Reply(context.Background(), "pong"))
	})

	t.Run("Direct target answers the sender", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		conn := mocks.NewMockConnection(ctrl)
		prefix, err := config.NewPrefix("!")
		req.NoError(err)

		// The message was addressed to the bot itself
		conn.EXPECT().WhoIs(gomock.Any(), "Alice").Return(alice(), nil)
		conn.EXPECT().IsChannel("chatbot").Return(false)
		conn.EXPECT().SendMessage(gomock.Any(), "Alice", "pong").Return(nil).Times(1)

		inv, err := NewFactory(prefix, nil).FromMessage(context.Background(), conn, "chatbot", "Alice", "!ping")
		req.NoError(err)
		req.NoError(inv.Reply(context.Background(), "pong"))
	})

	t.Run("Filter rewrites the reply", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		conn := mocks.NewMockConnection(ctrl)
		filter := mocks.NewMockTextFilter(ctrl)
		prefix, err := config.NewPrefix("!")
		req.NoError(err)

		conn.EXPECT().WhoIs(gomock.Any(), "Alice").Return(alice(), nil)
		filter.EXPECT().Censor("you badger").Return("you ******", []string{"badger"})
		conn.EXPECT().IsChannel("#lobby").Return(true)
		conn.EXPECT().SendMessage(gomock.Any(), "#lobby", "you ******").Return(nil).Times(1)

		inv, err := NewFactory(prefix, filter).FromMessage(context.Background(), conn, "#lobby", "Alice", "!insult")
		req.NoError(err)
		req.NoError(inv.Reply(context.Background(), "you badger"))
	})
}

func TestInvocation_Channel(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockConnection(ctrl)
	prefix, err := config.NewPrefix("!")
	req.NoError(err)
	factory := NewFactory(prefix, nil)

	conn.EXPECT().WhoIs(gomock.Any(), "Alice").Return(alice(), nil).Times(2)
	conn.EXPECT().IsChannel("#lobby").Return(true)
	conn.EXPECT().IsChannel("chatbot").Return(false)

	// Given a message sent in a channel
	inv, err := factory.FromMessage(context.Background(), conn, "#lobby", "Alice", "!ping")
	req.NoError(err)

	// Then the channel is known
	channel, ok := inv.Channel()
	req.True(ok)
	req.Equal("#lobby", channel)

	// Given a message sent directly to the bot
	inv, err = factory.FromMessage(context.Background(), conn, "chatbot", "Alice", "!ping")
	req.NoError(err)

	// Then there is no channel
	channel, ok = inv.Channel()
	req.False(ok)
	req.Empty(channel)
}
