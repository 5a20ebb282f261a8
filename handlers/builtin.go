// Package handlers holds the commands every bot ships with.
package handlers

import (
	"chat-bot/command"
	"chat-bot/domain"
	"chat-bot/repositories"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	defaultHistory = 5
	maxHistory     = 20
)

// Builtins groups the handlers that need access to the bot's own state.
type Builtins struct {
	registry *command.Registry
	history  repositories.IInvocationRepository
}

// Register adds the built-in commands to registry.
// It stops at the first failure: a collision here means two commands claim the same name.
func Register(registry *command.Registry, history repositories.IInvocationRepository) error {
	b := Builtins{registry: registry, history: history}
	commands := []struct {
		aliases []string
		handler command.Handler
	}{
		{[]string{"ping"}, command.HandlerFunc(Ping)},
		{[]string{"echo", "say"}, command.HandlerFunc(Echo)},
		{[]string{"whoami"}, command.HandlerFunc(WhoAmI)},
		{[]string{"help", "commands"}, command.HandlerFunc(b.Help)},
		{[]string{"history", "last"}, command.HandlerFunc(b.History)},
	}
	for _, c := range commands {
		if err := registry.Register(c.aliases, c.handler); err != nil {
			return fmt.Errorf("registering %v: %w", c.aliases, err)
		}
	}
	return nil
}

func Ping(ctx context.Context, call *command.Invocation, _ ...string) error {
	return call.Reply(ctx, "pong")
}

// Echo repeats everything after the command name.
func Echo(ctx context.Context, call *command.Invocation, args ...string) error {
	if len(args) == 0 {
		return call.Reply(ctx, "usage: echo <text>")
	}
	return call.Reply(ctx, call.WordEOL(1))
}

// WhoAmI tells the sender what the WHOIS lookup knows about them.
func WhoAmI(ctx context.Context, call *command.Invocation, _ ...string) error {
	sender := call.Sender()
	parts := []string{sender.Mask()}
	if sender.LoggedIn() {
		parts = append(parts, "logged in as "+sender.Account)
	}
	if sender.Identified {
		parts = append(parts, "identified")
	}
	if sender.Oper {
		parts = append(parts, "operator")
	}
	if sender.Secure {
		parts = append(parts, "secure")
	}
	if vhost, ok := sender.VHost(); ok {
		parts = append(parts, "vhost "+vhost)
	}
	if sender.Away {
		parts = append(parts, strings.TrimSpace("away "+sender.AwayMessage))
	}
	if sender.Idle > 0 {
		parts = append(parts, "idle "+sender.Idle.String())
	}
	if sender.Server != "" {
		parts = append(parts, "on "+sender.Server)
	}
	return call.Reply(ctx, strings.Join(parts, ", "))
}

func (b Builtins) Help(ctx context.Context, call *command.Invocation, _ ...string) error {
	return call.Reply(ctx, "commands: "+strings.Join(b.registry.Aliases(), ", "))
}

// History lists the last invocations, most recent first: history [count]
func (b Builtins) History(ctx context.Context, call *command.Invocation, args ...string) error {
	if b.history == nil {
		return call.Reply(ctx, "history is disabled")
	}
	count := defaultHistory
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return call.Reply(ctx, "usage: history [count]")
		}
		count = min(n, maxHistory)
	}

	records, err := b.history.GetInvocations(lo.ToPtr(count))
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(records) == 0 {
		return call.Reply(ctx, "no command yet")
	}
	lines := lo.Map(records, func(r domain.InvocationRecord, _ int) string {
		return fmt.Sprintf("%s %s by %s (%s)", r.At.Format("15:04:05"), r.Command, r.Sender, r.Outcome)
	})
	return call.Reply(ctx, strings.Join(lines, " | "))
}
