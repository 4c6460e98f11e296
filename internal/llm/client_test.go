package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHTTPClientGenerate(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  hola  "}}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "key", "asi1-mini", 0, zap.NewNop())
	out, err := c.Generate(context.Background(), Request{System: "sys", Prompt: "user", Temperature: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hola" {
		t.Fatalf("expected trimmed content, got %q", out)
	}
	if got.Model != "asi1-mini" || got.Temperature != 0.5 || got.MaxTokens != 2000 {
		t.Fatalf("unexpected request body %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "user" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
}

func TestHTTPClientErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"status 500", http.StatusInternalServerError, `{}`, ErrAPI},
		{"error en body", http.StatusOK, `{"error":{"message":"quota"}}`, ErrAPI},
		{"sin choices", http.StatusOK, `{"choices":[]}`, ErrEmpty},
		{"json invalido", http.StatusOK, `not json`, ErrGeneric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, "key", "m", 0, zap.NewNop())
			_, err := c.Generate(context.Background(), Request{Prompt: "x"})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if !IsFailure(err) {
				t.Fatalf("expected IsFailure to classify %v", err)
			}
		})
	}
}

func TestHTTPClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewHTTPClient(srv.URL, "key", "m", 0, zap.NewNop())
	_, err := c.Generate(ctx, Request{Prompt: "x"})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestDisabledClient(t *testing.T) {
	_, err := NewDisabledClient("LLM_API_KEY not set").Generate(context.Background(), Request{})
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestContainsFailureMarker(t *testing.T) {
	if !ContainsFailureMarker("LLM timeout after multiple retries") {
		t.Fatalf("expected marker detection")
	}
	if ContainsFailureMarker("Bitcoin is volatile") {
		t.Fatalf("unexpected marker detection")
	}
}

func TestMockClientReplies(t *testing.T) {
	m := &MockClient{Replies: []MockReply{{Err: ErrTimeout}, {Response: "ok"}}}
	if _, err := m.Generate(context.Background(), Request{Prompt: "a"}); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected first reply error, got %v", err)
	}
	for i := 0; i < 2; i++ {
		out, err := m.Generate(context.Background(), Request{Prompt: "b"})
		if err != nil || out != "ok" {
			t.Fatalf("expected ok, got %q %v", out, err)
		}
	}
	if m.Calls() != 3 || m.LastRequest().Prompt != "b" {
		t.Fatalf("unexpected mock bookkeeping: calls=%d last=%+v", m.Calls(), m.LastRequest())
	}
}
