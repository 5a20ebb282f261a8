package console

import (
	"bytes"
	"chat-bot/domain"
	"chat-bot/errors"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newConsole(out *bytes.Buffer, inbound chan domain.InboundMessage) *Console {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return New(log, inbound, out, "chatbot", "operator", "#lobby", "#&")
}

func TestConsole_IsChannel(t *testing.T) {
	req := require.New(t)
	c := newConsole(&bytes.Buffer{}, nil)

	req.True(c.IsChannel("#lobby"))
	req.True(c.IsChannel("&local"))
	req.False(c.IsChannel("chatbot"))
	req.False(c.IsChannel(""))
}

func TestConsole_WhoIs(t *testing.T) {
	req := require.New(t)
	c := newConsole(&bytes.Buffer{}, nil)

	identity, err := c.WhoIs(context.Background(), "operator")
	req.NoError(err)
	req.Equal("operator!operator@localhost", identity.Mask())
	req.True(identity.LoggedIn())
	req.True(identity.Identified)
	req.True(identity.Oper)
	req.True(identity.Secure)
	req.False(identity.Away)
	req.GreaterOrEqual(identity.Idle, time.Duration(0))
	req.Equal("localhost", identity.Server)
	req.Equal("local console", identity.ServerInfo)

	identity, err = c.WhoIs(context.Background(), "chatbot")
	req.NoError(err)
	req.False(identity.LoggedIn())
	req.False(identity.Oper)

	_, err = c.WhoIs(context.Background(), "stranger")
	req.ErrorIs(err, errors.ErrNoSuchNick)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.WhoIs(ctx, "operator")
	req.ErrorIs(err, context.Canceled)
}

func TestConsole_SendMessage(t *testing.T) {
	req := require.New(t)
	out := &bytes.Buffer{}
	c := newConsole(out, nil)

	req.NoError(c.SendMessage(context.Background(), "#lobby", "pong"))

	req.Contains(out.String(), "#lobby")
	req.Contains(out.String(), "chatbot")
	req.Contains(out.String(), "pong")
}

func TestConsole_HandleLine(t *testing.T) {
	req := require.New(t)
	out := &bytes.Buffer{}
	inbound := make(chan domain.InboundMessage, 4)
	c := newConsole(out, inbound)
	ctx := context.Background()

	// When a plain line is typed, it goes to the current channel
	req.False(c.HandleLine(ctx, "!ping"))
	msg := <-inbound
	req.Equal("!ping", msg.Raw)
	req.Equal("operator", msg.Sender)
	req.Equal("#lobby", msg.Target)

	// When the operator joins another channel
	req.False(c.HandleLine(ctx, "/join &ops"))
	req.Equal("&ops", c.Target())

	// When the operator opens a private conversation with the bot
	req.False(c.HandleLine(ctx, "/query"))
	req.False(c.HandleLine(ctx, "!whoami"))
	msg = <-inbound
	req.Equal("chatbot", msg.Target)

	// When the join is malformed, the target does not change
	req.False(c.HandleLine(ctx, "/join lobby"))
	req.Equal("chatbot", c.Target())
	req.Contains(out.String(), "usage: /join")
	req.Empty(inbound)

	// When the operator quits
	req.True(c.HandleLine(ctx, "/quit"))
}
