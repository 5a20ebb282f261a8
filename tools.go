//go:build tools
// +build tools

// Package tools declares tool dependencies for this module.
//
// These imports are not used at runtime. They keep mockgen, invoked through
// the go:generate directives next to each mocked interface, pinned in go.mod.
package chat_bot

import (
	_ "go.uber.org/mock/mockgen"
)
