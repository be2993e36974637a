package transport

import (
	"encoding/json"
	"fmt"

	"github.com/tidelight/aipane/pkg/events"
)

// Channel names in the wire envelope.
const (
	ChannelStream    = "stream"
	ChannelOperation = "operation"
)

// envelope is the wire form of one event. Stream and operation events share
// the envelope; the channel field picks which fields are meaningful.
type envelope struct {
	Channel      string `json:"channel"`
	Conversation int    `json:"conversation"`
	Sequence     int    `json:"sequence"`
	MessageID    string `json:"message_id"`
	RequestID    string `json:"request_id,omitempty"`

	// Stream fields.
	Delta     string `json:"delta,omitempty"`
	Complete  bool   `json:"complete,omitempty"`
	Cancelled bool   `json:"cancelled,omitempty"`
	EditFile  bool   `json:"edit_file,omitempty"`
	Filename  string `json:"filename,omitempty"`

	// Operation fields.
	Type        string `json:"type,omitempty"`
	Command     string `json:"command,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Content     string `json:"content,omitempty"`
}

// Decode parses one JSON event envelope into its typed event.
func Decode(data []byte) (events.Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	switch env.Channel {
	case ChannelStream:
		kind := events.KindText
		if env.EditFile {
			kind = events.KindEditFile
		}
		return events.StreamDelta{
			ConversationID: env.Conversation,
			Seq:            env.Sequence,
			MessageID:      env.MessageID,
			Delta:          env.Delta,
			Complete:       env.Complete,
			Cancelled:      env.Cancelled,
			Kind:           kind,
			Filename:       env.Filename,
			RequestID:      env.RequestID,
		}, nil
	case ChannelOperation:
		if env.Type == "" {
			return nil, fmt.Errorf("operation event without type (conversation=%d seq=%d)",
				env.Conversation, env.Sequence)
		}
		return events.Operation{
			ConversationID: env.Conversation,
			Seq:            env.Sequence,
			Type:           events.OpType(env.Type),
			MessageID:      env.MessageID,
			Command:        env.Command,
			Explanation:    env.Explanation,
			RequestID:      env.RequestID,
			Filename:       env.Filename,
			Content:        env.Content,
		}, nil
	default:
		return nil, fmt.Errorf("unknown event channel %q", env.Channel)
	}
}

// Encode serializes an event back to its wire envelope. Used by the recorder
// and by tests building fixtures.
func Encode(ev events.Event) ([]byte, error) {
	var env envelope
	switch e := ev.(type) {
	case events.StreamDelta:
		env = envelope{
			Channel:      ChannelStream,
			Conversation: e.ConversationID,
			Sequence:     e.Seq,
			MessageID:    e.MessageID,
			RequestID:    e.RequestID,
			Delta:        e.Delta,
			Complete:     e.Complete,
			Cancelled:    e.Cancelled,
			EditFile:     e.Kind == events.KindEditFile,
			Filename:     e.Filename,
		}
	case events.Operation:
		env = envelope{
			Channel:      ChannelOperation,
			Conversation: e.ConversationID,
			Sequence:     e.Seq,
			MessageID:    e.MessageID,
			RequestID:    e.RequestID,
			Type:         string(e.Type),
			Command:      e.Command,
			Explanation:  e.Explanation,
			Filename:     e.Filename,
			Content:      e.Content,
		}
	default:
		return nil, fmt.Errorf("unknown event type %T", ev)
	}
	return json.Marshal(env)
}
