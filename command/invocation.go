package command

import (
	"chat-bot/contract"
	"chat-bot/domain"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Invocation is the context of a single command call.
// It is built once per message and never modified afterwards: every accessor
// hands out copies, so a handler cannot alter what another one sees.
type Invocation struct {
	id       uuid.UUID
	bot      contract.Connection
	filter   contract.TextFilter
	sender   domain.Identity
	target   string
	words    []string
	wordsEOL []string
	prefixed bool
	at       time.Time
}

func (i *Invocation) ID() uuid.UUID {
	return i.id
}

// Bot returns the connection the message arrived on.
func (i *Invocation) Bot() contract.Connection {
	return i.bot
}

func (i *Invocation) Sender() domain.Identity {
	return i.sender
}

// Target is the channel or direct-message peer the message was sent to.
func (i *Invocation) Target() string {
	return i.target
}

func (i *Invocation) Words() []string {
	return slices.Clone(i.words)
}

func (i *Invocation) WordsEOL() []string {
	return slices.Clone(i.wordsEOL)
}

// Word returns the n-th word, or "" when out of range.
func (i *Invocation) Word(n int) string {
	if n < 0 || n >= len(i.words) {
		return ""
	}
	return i.words[n]
}

// WordEOL returns everything from the n-th word to the end of the line, or "".
func (i *Invocation) WordEOL(n int) string {
	if n < 0 || n >= len(i.wordsEOL) {
		return ""
	}
	return i.wordsEOL[n]
}

// Command is the first word of a prefixed message, or "" otherwise.
func (i *Invocation) Command() string {
	if !i.prefixed {
		return ""
	}
	return i.Word(0)
}

// Prefixed reports whether the message started with the command prefix.
func (i *Invocation) Prefixed() bool {
	return i.prefixed
}

func (i *Invocation) At() time.Time {
	return i.at
}

// Channel returns the channel the command was sent in. It reports false when
// the message came from a direct conversation.
func (i *Invocation) Channel() (string, bool) {
	return Channel(i.bot, i.target)
}

// Reply answers in the channel the command came from, or privately to the
// sender when it came from a direct conversation.
func (i *Invocation) Reply(ctx context.Context, text string) error {
	if i.filter != nil {
		text, _ = i.filter.Censor(text)
	}
	return Reply(ctx, i.bot, i.target, i.sender.Nick, text)
}

// Channel returns target when the connection classifies it as a channel.
func Channel(conn contract.Connection, target string) (string, bool) {
	if conn.IsChannel(target) {
		return target, true
	}
	return "", false
}

// Reply sends text to the channel target, or to nick when target is a direct
// conversation. Exactly one message is sent.
func Reply(ctx context.Context, conn contract.Connection, target, nick, text string) error {
	if channel, ok := Channel(conn, target); ok {
		return conn.SendMessage(ctx, channel, text)
	}
	return conn.SendMessage(ctx, nick, text)
}
