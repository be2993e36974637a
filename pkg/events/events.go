package events

import "errors"

// ErrMissingFilename is returned when an edit-file stream references a
// message that has no widget yet and carries no filename to create one with.
// Substituting a guessed filename would corrupt diff rendering downstream,
// so this is fatal for the message.
var ErrMissingFilename = errors.New("edit file event missing required filename")

// CancelledContentPrefix marks edit-file content that was cancelled before
// completion when a conversation is restored from history. The prefix is part
// of the backend wire format.
const CancelledContentPrefix = "CANCELLED:"

// StreamKind identifies what a stream delta is appending to.
type StreamKind string

const (
	KindText     StreamKind = "text"
	KindEditFile StreamKind = "edit_file"
)

// OpType identifies a discrete conversation operation.
type OpType string

const (
	OpCreateConsoleCommand       OpType = "create_console_command"
	OpCreateTerminalCommand      OpType = "create_terminal_command"
	OpCreateEditFileCommand      OpType = "create_edit_file_command"
	OpCreateUserMessage          OpType = "create_user_message"
	OpCreateAssistantMessage     OpType = "create_assistant_message"
	OpClearConversation          OpType = "clear_conversation"
	OpRevertButton               OpType = "revert_button"
	OpHideWidgetButtons          OpType = "hide_widget_buttons"
	OpCreateFunctionCallMessage  OpType = "create_function_call_message"
	OpStartBackgroundRecreation  OpType = "start_background_recreation"
	OpFinishBackgroundRecreation OpType = "finish_background_recreation"
)

// Event is the sealed union of everything the backend can deliver to the
// panel. Each variant carries the conversation it belongs to and the
// conversation-scoped sequence number assigned by the backend.
type Event interface {
	Conversation() int
	Sequence() int

	// sealed
	isEvent()
}

// StreamDelta is an incremental chunk of streaming content for one message.
// Filename and RequestID are only meaningful when Kind is KindEditFile; the
// dispatcher needs them to create the widget on first reference.
type StreamDelta struct {
	ConversationID int
	Seq            int
	MessageID      string
	Delta          string
	Complete       bool
	Cancelled      bool
	Kind           StreamKind
	Filename       string
	RequestID      string
}

func (e StreamDelta) Conversation() int { return e.ConversationID }
func (e StreamDelta) Sequence() int     { return e.Seq }
func (e StreamDelta) isEvent()          {}

// Operation is a discrete, non-streaming conversation mutation. Which payload
// fields are meaningful depends on Type; creation operations use Command or
// Content plus Explanation and RequestID, hide_widget_buttons carries the
// widget type in Content.
type Operation struct {
	ConversationID int
	Seq            int
	Type           OpType
	MessageID      string
	Command        string
	Explanation    string
	RequestID      string
	Filename       string
	Content        string
}

func (e Operation) Conversation() int { return e.ConversationID }
func (e Operation) Sequence() int     { return e.Seq }
func (e Operation) isEvent()          {}
