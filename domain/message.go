// Package domain contains core concepts of the chat bot.
// This file defines inbound chat messages.
// Messages are immutable once received.
package domain

import (
	"time"
)

// InboundMessage is one raw line received from the chat connection.
// Target is either a channel or the peer of a direct conversation.
type InboundMessage struct {
	Raw        string
	Sender     string
	Target     string
	ReceivedAt time.Time
}
