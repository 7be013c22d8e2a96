// Text-generation backend interface and message types.
package llm

import "context"

// Role identifies the author of a chat message.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one entry in a chat history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolSpec declares a callable tool to the model.
type ToolSpec struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

// ToolCall is a structured tool invocation requested by the model.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Request carries everything a generation call needs.
type Request struct {
	System      string
	Messages    []Message
	Tools       []ToolSpec
	Temperature float64
}

// Response is the model's output: generated text plus any requested tool
// invocations.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Client is a text-generation backend. Implementations must honor ctx
// cancellation; errors are fatal for the calling turn.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelName() string
}
