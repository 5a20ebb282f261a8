// Package command turns raw chat lines into handler invocations.
//
// A Registry maps aliases to handlers, a Factory builds the immutable
// Invocation handed to each handler, and a Dispatcher ties them together
// behind the current command prefix.
package command

import (
	"context"
	"reflect"
)

// Handler executes one command. args holds the tokens that followed the
// command name; the bot connection, sender and target travel on call.
type Handler interface {
	Handle(ctx context.Context, call *Invocation, args ...string) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, call *Invocation, args ...string) error

func (f HandlerFunc) Handle(ctx context.Context, call *Invocation, args ...string) error {
	return f(ctx, call, args...)
}

// invocable reports whether h can actually be called.
// A nil func or a nil pointer wrapped in the interface is rejected as well.
func invocable(h Handler) bool {
	if h == nil {
		return false
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return !v.IsNil()
	default:
		return true
	}
}
