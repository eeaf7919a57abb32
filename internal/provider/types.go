// Package provider defines the interface to the locally hosted language
// model. The analysis core only needs plain chat messages; streaming, tool
// calling, and sampling controls belong to the backends.
package provider

import "context"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelInfo describes a locally available model.
type ModelInfo struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	Digest     string `json:"digest"`
	ModifiedAt string `json:"modified_at"`
}

// ChatClient sends a conversation to a model and returns its reply.
type ChatClient interface {
	Chat(ctx context.Context, model string, messages []Message) (string, error)
}

// ModelLister enumerates the models the local server can run.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// NewSystemMessage builds a system-role message.
func NewSystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// NewUserMessage builds a user-role message.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}
