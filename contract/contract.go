//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-bot/domain"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Connection is the live chat connection the bot is attached to.
// The dispatch engine never speaks the protocol itself, it only asks these questions.
type Connection interface {
	// IsChannel reports whether target is channel-shaped (as opposed to a nickname).
	IsChannel(target string) bool
	// WhoIs resolves the full identity behind a nickname.
	WhoIs(ctx context.Context, nick string) (domain.Identity, error)
	// SendMessage emits exactly one message to target.
	SendMessage(ctx context.Context, target, text string) error
}

// TextFilter rewrites outbound text, returning the matched words.
type TextFilter interface {
	Censor(text string) (string, []string)
}

// PrefixSource exposes the command prefix in effect right now.
type PrefixSource interface {
	Current() string
}
