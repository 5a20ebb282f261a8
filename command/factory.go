package command

import (
	"chat-bot/contract"
	"chat-bot/errors"
	"chat-bot/tokenizer"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Factory builds Invocations from raw messages.
type Factory struct {
	prefix contract.PrefixSource
	filter contract.TextFilter
	now    func() time.Time
}

// NewFactory returns a factory reading prefix at every call.
// filter may be nil; when set, it rewrites every reply.
func NewFactory(prefix contract.PrefixSource, filter contract.TextFilter) *Factory {
	return &Factory{prefix: prefix, filter: filter, now: time.Now}
}

// FromMessage builds the Invocation for raw, using the prefix in effect now.
func (f *Factory) FromMessage(ctx context.Context, conn contract.Connection, target, sender, raw string) (*Invocation, error) {
	return f.FromMessageWithPrefix(ctx, conn, target, sender, raw, f.prefix.Current())
}

// FromMessageWithPrefix builds the Invocation for raw against an explicit prefix.
// The dispatcher uses it so that the prefix it matched is the one the handler sees.
//
// The sender's identity is resolved through conn; a failed lookup is returned
// as is and no Invocation is produced.
func (f *Factory) FromMessageWithPrefix(ctx context.Context, conn contract.Connection,
	target, sender, raw, prefix string) (*Invocation, error) {
	if conn == nil {
		return nil, fmt.Errorf("%w: no connection to resolve %q", errors.ErrMisconfigured, sender)
	}

	body := raw
	prefixed := prefix != "" && strings.HasPrefix(raw, prefix)
	if prefixed {
		body = raw[len(prefix):]
	}
	words, wordsEOL := tokenizer.Split(body)

	identity, err := conn.WhoIs(ctx, sender)
	if err != nil {
		return nil, fmt.Errorf("whois %q: %w", sender, err)
	}

	return &Invocation{
		id:       uuid.New(),
		bot:      conn,
		filter:   f.filter,
		sender:   identity,
		target:   target,
		words:    words,
		wordsEOL: wordsEOL,
		prefixed: prefixed,
		at:       f.now().UTC(),
	}, nil
}
