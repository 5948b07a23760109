package generation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"notes-assistant/internal/domain"
)

// MockResponse is a canned response for the MockClient.
type MockResponse struct {
	Text string
	Err  error
}

// MockClient is a deterministic GenerationClient for tests and offline runs.
// It returns canned responses in FIFO order and records all prompts. When the
// queue is empty it uses Fallback, or fails if Fallback is nil.
type MockClient struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []string
	Fallback  func(prompt string) string
}

func NewMockClient(responses ...MockResponse) *MockClient {
	return &MockClient{responses: responses}
}

func (m *MockClient) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, prompt)

	if len(m.responses) == 0 {
		if m.Fallback != nil {
			return m.Fallback(prompt), nil
		}
		return "", &domain.GenerationError{Backend: "mock", Message: "no canned response left"}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return "", resp.Err
	}
	return resp.Text, nil
}

func (m *MockClient) Name() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockClient) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// CannedText answers quiz prompts with a well-formed quiz of the requested
// size and anything else with a short placeholder, so the "mock" provider can
// drive the whole app without a network.
func CannedText(prompt string) string {
	var count int
	if _, err := fmt.Sscanf(prompt, "From these notes, generate %d multiple-choice", &count); err == nil && count > 0 {
		var b strings.Builder
		for i := 1; i <= count; i++ {
			fmt.Fprintf(&b, "Q%d. Sample question %d?\nA) First\nB) Second\nC) Third\nD) Fourth\nAnswer: %c\n\n", i, i, 'A'+rune((i-1)%4))
		}
		return b.String()
	}
	first, _, _ := strings.Cut(prompt, "\n")
	return "Generated offline for: " + first
}

var _ domain.GenerationClient = (*MockClient)(nil)
