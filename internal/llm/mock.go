package llm

import (
	"context"
	"sync"
)

// MockReply es una respuesta programada del MockClient.
type MockReply struct {
	Response string
	Err      error
}

// MockClient permite tests sin llamar a un LLM real.
// Si Replies no está vacío se consumen en orden; al agotarse se repite la
// última. Si está vacío se usan Response y Err.
type MockClient struct {
	Response string
	Err      error
	Replies  []MockReply

	mu       sync.Mutex
	calls    int
	requests []Request
}

func (m *MockClient) Generate(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.requests = append(m.requests, req)

	if len(m.Replies) == 0 {
		return m.Response, m.Err
	}
	idx := m.calls - 1
	if idx >= len(m.Replies) {
		idx = len(m.Replies) - 1
	}
	r := m.Replies[idx]
	return r.Response, r.Err
}

// Calls devuelve la cantidad de invocaciones.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastRequest devuelve la última petición recibida.
func (m *MockClient) LastRequest() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return Request{}
	}
	return m.requests[len(m.requests)-1]
}
