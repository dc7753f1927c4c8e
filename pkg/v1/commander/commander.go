package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// ParseCommand orders the parser to process single feed.
type ParseCommand struct {
	FeedURL string `json:"feedUrl"`
}

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// ParseCommander sends parse commands.
type ParseCommander struct {
	sender Sender
}

// NewParseCommander returns new ParseCommander using provided sender for sending messages.
func NewParseCommander(sender Sender) ParseCommander {
	return ParseCommander{
		sender: sender,
	}
}

// SendParseCommand sends parse command with provided feedURL.
func (c ParseCommander) SendParseCommand(ctx context.Context, feedURL string) error {
	cmd := ParseCommand{
		FeedURL: feedURL,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal parse command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
