// Package console is a local chat connection: the operator types lines in a
// terminal and the bot answers in the same terminal.
package console

import (
	"chat-bot/contract"
	"chat-bot/domain"
	"chat-bot/errors"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/gookit/color"
)

var (
	_ contract.Connection = (*Console)(nil)
	_ contract.Worker     = (*Console)(nil)
)

const (
	localHost  = "localhost"
	serverInfo = "local console"
)

type Console struct {
	mu           sync.RWMutex
	log          *slog.Logger
	inbound      chan<- domain.InboundMessage
	out          io.Writer
	botNick      string
	nick         string
	target       string
	channelTypes string
	onQuit       func()
	seen         time.Time
}

// New returns a console speaking as nick, starting in target.
// channelTypes lists the leading characters that mark a channel, e.g. "#&".
func New(log *slog.Logger, inbound chan<- domain.InboundMessage, out io.Writer,
	botNick, nick, target, channelTypes string) *Console {
	return &Console{
		log:          log,
		inbound:      inbound,
		out:          out,
		botNick:      botNick,
		nick:         nick,
		target:       target,
		channelTypes: channelTypes,
		seen:         time.Now(),
	}
}

func (c *Console) IsChannel(target string) bool {
	return target != "" && strings.ContainsAny(target[:1], c.channelTypes)
}

// WhoIs knows two people: the operator at the keyboard and the bot itself.
func (c *Console) WhoIs(ctx context.Context, nick string) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}
	switch nick {
	case c.nick:
		return domain.Identity{
			Nick:       nick,
			User:       nick,
			Host:       localHost,
			RealName:   "console operator",
			Account:    nick,
			Identified: true,
			Oper:       true,
			Secure:     true,
			Idle:       time.Since(c.lastSeen()).Truncate(time.Second),
			Server:     localHost,
			ServerInfo: serverInfo,
		}, nil
	case c.botNick:
		return domain.Identity{
			Nick:       nick,
			User:       nick,
			Host:       localHost,
			RealName:   "chat bot",
			Secure:     true,
			Server:     localHost,
			ServerInfo: serverInfo,
		}, nil
	default:
		return domain.Identity{}, fmt.Errorf("%w: %s", errors.ErrNoSuchNick, nick)
	}
}

func (c *Console) SendMessage(ctx context.Context, target, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, "%s %s %s\n",
		color.Cyan.Sprintf("[%s]", target),
		color.Green.Sprintf("<%s>", c.botNick),
		text)
	return err
}

// OnQuit registers f to run once the operator leaves.
func (c *Console) OnQuit(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onQuit = f
}

// Target returns where typed lines are currently sent.
func (c *Console) Target() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.target
}

// Run reads lines from the terminal until the context ends, the operator
// quits, or input is exhausted.
func (c *Console) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "/quit",
	})
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer rl.Close()

	c.mu.Lock()
	c.out = rl.Stdout()
	c.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { _ = rl.Close() })
	defer stop()

	for {
		line, err := rl.Readline()
		if stderrors.Is(err, readline.ErrInterrupt) || stderrors.Is(err, io.EOF) {
			c.quit()
			return nil
		}
		if err != nil {
			return err
		}
		if quit := c.HandleLine(ctx, line); quit {
			c.quit()
			return nil
		}
		rl.SetPrompt(c.prompt())
	}
}

func (c *Console) quit() {
	c.mu.RLock()
	onQuit := c.onQuit
	c.mu.RUnlock()
	if onQuit != nil {
		onQuit()
	}
}

// HandleLine interprets one typed line. It reports whether the operator asked to quit.
//
//	/join <channel>  talk in a channel
//	/query           talk privately to the bot
//	/quit            leave
//
// Anything else is sent to the current target.
func (c *Console) HandleLine(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) > 0 {
		switch fields[0] {
		case "/quit":
			return true
		case "/query":
			c.setTarget(c.botNick)
			return false
		case "/join":
			if len(fields) != 2 || !c.IsChannel(fields[1]) {
				c.notice(fmt.Sprintf("usage: /join <channel>, channel types are %q", c.channelTypes))
				return false
			}
			c.setTarget(fields[1])
			return false
		}
	}

	c.mu.Lock()
	c.seen = time.Now()
	c.mu.Unlock()

	msg := domain.InboundMessage{Raw: line, Sender: c.nick, Target: c.Target(), ReceivedAt: time.Now().UTC()}
	select {
	case c.inbound <- msg:
	case <-ctx.Done():
	}
	return false
}

func (c *Console) setTarget(target string) {
	c.mu.Lock()
	c.target = target
	c.mu.Unlock()
	c.log.Debug("Console target changed", "target", target)
}

func (c *Console) notice(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, color.Yellow.Sprint(text))
}

func (c *Console) lastSeen() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seen
}

func (c *Console) prompt() string {
	return fmt.Sprintf("%s> ", c.Target())
}
