package slack

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/f9n/alertmanager-silences-slack-reporter/internal/pkg/errors"
)

func TestPostMessage(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer xoxb-test" {
			t.Errorf("Authorization = %q, want Bearer token", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Write([]byte(`{"ok": true, "ts": "1700000000.000100", "channel": "C123"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{Token: "xoxb-test", APIURL: srv.URL})
	err := client.PostMessage(context.Background(), "C123", "hello")
	if err != nil {
		t.Fatalf("PostMessage() error = %v", err)
	}

	if got.Channel != "C123" {
		t.Errorf("posted channel = %q, want C123", got.Channel)
	}
	if got.Text != "hello" {
		t.Errorf("posted text = %q, want hello", got.Text)
	}
}

func TestPostMessage_Rejected(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"ok": false, "error": "channel_not_found"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{Token: "xoxb-test", APIURL: srv.URL})
	err := client.PostMessage(context.Background(), "C404", "hello")
	if err == nil {
		t.Fatal("PostMessage() expected error for ok:false")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Kind != errors.KindPublishRejected {
		t.Errorf("kind = %q, want %q", appErr.Kind, errors.KindPublishRejected)
	}
	if appErr.Code != "channel_not_found" {
		t.Errorf("code = %q, want channel_not_found", appErr.Code)
	}
	if requests != 1 {
		t.Errorf("got %d requests, want exactly 1 (no retry)", requests)
	}
}

func TestPostMessage_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind string
	}{
		{
			name: "http 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "internal error", http.StatusInternalServerError)
			},
			wantKind: errors.KindUpstream,
		},
		{
			name: "http 429",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			},
			wantKind: errors.KindUpstream,
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			wantKind: errors.KindDeserialization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(Config{Token: "xoxb-test", APIURL: srv.URL})
			err := client.PostMessage(context.Background(), "C123", "hello")
			if err == nil {
				t.Fatal("PostMessage() expected error, got nil")
			}
			if kind := errors.KindOf(err); kind != tt.wantKind {
				t.Errorf("error kind = %q, want %q (err: %v)", kind, tt.wantKind, err)
			}
		})
	}
}

func TestPostMessage_Connectivity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(Config{Token: "xoxb-test", APIURL: srv.URL})
	err := client.PostMessage(context.Background(), "C123", "hello")
	if err == nil {
		t.Fatal("PostMessage() expected error against closed server")
	}
	if kind := errors.KindOf(err); kind != errors.KindConnectivity {
		t.Errorf("error kind = %q, want %q", kind, errors.KindConnectivity)
	}
}
