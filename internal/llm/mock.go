package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	// synthesize answers from the request schema once the queue is empty.
	synthesize bool
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewSchemaMockProvider creates a MockProvider that never runs dry: with an
// empty queue it answers with the smallest value the request schema allows.
// It backs the "mock" provider for offline runs.
func NewSchemaMockProvider() *MockProvider {
	return &MockProvider{synthesize: true}
}

// Generate returns the next canned response. With an empty queue it
// synthesizes a reply or fails with ErrProviderUnavailable.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		if !m.synthesize || req.Schema == nil {
			return nil, &ErrProviderUnavailable{Err: nil}
		}
		content, err := json.Marshal(placeholder(req.Schema.Definition))
		if err != nil {
			return nil, &ErrInvalidResponse{Err: err}
		}
		return &Response{Content: content, Model: "mock", StopReason: "end"}, nil
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }
func (m *MockProvider) Name() string    { return ProviderMock }

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// placeholder builds the minimal value satisfying a JSON Schema definition:
// first enum member, lower bounds for numbers and minItems for arrays.
func placeholder(def map[string]any) any {
	if enum := def["enum"]; enum != nil {
		switch e := enum.(type) {
		case []string:
			if len(e) > 0 {
				return e[0]
			}
		case []any:
			if len(e) > 0 {
				return e[0]
			}
		}
	}

	switch def["type"] {
	case "object":
		out := map[string]any{}
		props, _ := def["properties"].(map[string]any)
		for name, p := range props {
			if pd, ok := p.(map[string]any); ok {
				out[name] = placeholder(pd)
			}
		}
		return out
	case "array":
		n, _ := number(def["minItems"])
		items, _ := def["items"].(map[string]any)
		out := make([]any, 0, int(n))
		for range int(n) {
			out = append(out, placeholder(items))
		}
		return out
	case "boolean":
		return true
	case "integer", "number":
		n, _ := number(def["minimum"])
		return n
	default:
		return "placeholder"
	}
}
