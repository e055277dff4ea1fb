package channels

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/offkai-bot/offkai/internal/config"
)

func newFakeSlackServer(t *testing.T, respond func(method string) string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := strings.TrimPrefix(r.URL.Path, "/")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(respond(method)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSendMessageCallsPostMessage(t *testing.T) {
	srv := newFakeSlackServer(t, func(method string) string {
		if !strings.Contains(method, "chat.postMessage") {
			t.Fatalf("unexpected method %q", method)
		}
		return `{"ok": true, "channel": "C123", "ts": "1620000000.000100"}`
	})

	collab := NewSlackCollaborator(config.SlackConfig{BotToken: "xoxb-test", APIBase: srv.URL + "/"})
	if err := collab.SendMessage(context.Background(), 42, "hello"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
}

func TestSendMessageSurfacesSlackError(t *testing.T) {
	srv := newFakeSlackServer(t, func(method string) string {
		return `{"ok": false, "error": "channel_not_found"}`
	})

	collab := NewSlackCollaborator(config.SlackConfig{BotToken: "xoxb-test", APIBase: srv.URL + "/"})
	if err := collab.SendMessage(context.Background(), 42, "hello"); err == nil {
		t.Fatal("expected an error for channel_not_found")
	}
}

func TestDMUserOpensConversationThenSends(t *testing.T) {
	var sawOpen, sawPost bool
	srv := newFakeSlackServer(t, func(method string) string {
		switch {
		case strings.Contains(method, "conversations.open"):
			sawOpen = true
			return `{"ok": true, "channel": {"id": "D999"}}`
		case strings.Contains(method, "chat.postMessage"):
			sawPost = true
			return `{"ok": true, "channel": "D999", "ts": "1620000000.000100"}`
		default:
			return `{"ok": false, "error": "unexpected_method"}`
		}
	})

	collab := NewSlackCollaborator(config.SlackConfig{BotToken: "xoxb-test", APIBase: srv.URL + "/"})
	if err := collab.DMUser(context.Background(), 7, "hi"); err != nil {
		t.Fatalf("DMUser: %v", err)
	}
	if !sawOpen || !sawPost {
		t.Fatalf("expected both conversations.open and chat.postMessage to be called, got open=%v post=%v", sawOpen, sawPost)
	}
}

func TestJoinIDs(t *testing.T) {
	if got := joinIDs(nil); got != "" {
		t.Fatalf("expected empty string for no ids, got %q", got)
	}
	if got := joinIDs([]string{"a", "b", "c"}); got != "a,b,c" {
		t.Fatalf("expected comma-joined ids, got %q", got)
	}
}
