package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeTelegram struct {
	mu        sync.Mutex
	messages  []string
	documents map[string]string
	failFirst int
	updates   string
}

func (f *fakeTelegram) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch {
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			if f.failFirst > 0 {
				f.failFirst--
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			var p map[string]interface{}
			json.NewDecoder(r.Body).Decode(&p)
			f.messages = append(f.messages, p["text"].(string))
		case strings.HasSuffix(r.URL.Path, "/sendDocument"):
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parse multipart: %v", err)
			}
			file, hdr, err := r.FormFile("document")
			if err != nil {
				t.Errorf("missing document: %v", err)
				return
			}
			data, _ := io.ReadAll(file)
			if f.documents == nil {
				f.documents = map[string]string{}
			}
			f.documents[hdr.Filename] = string(data)
			if r.FormValue("chat_id") != "42" {
				t.Errorf("unexpected chat_id %q", r.FormValue("chat_id"))
			}
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			w.Write([]byte(f.updates))
			return
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	})
}

func newFake(t *testing.T, f *fakeTelegram) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	n := NewTelegramNotifier("TOKEN", "42", "")
	n.BaseURL = srv.URL
	return n
}

func TestSend(t *testing.T) {
	f := &fakeTelegram{}
	n := newFake(t, f)
	if err := n.Send("<b>hi</b>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.messages) != 1 || f.messages[0] != "<b>hi</b>" {
		t.Errorf("unexpected messages %v", f.messages)
	}
}

func TestSendWithRetry(t *testing.T) {
	retryBase = time.Millisecond
	defer func() { retryBase = time.Second }()

	f := &fakeTelegram{failFirst: 2}
	n := newFake(t, f)
	if err := n.SendWithRetry(context.Background(), "hello", 3); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if len(f.messages) != 1 {
		t.Errorf("expected one delivered message, got %d", len(f.messages))
	}

	f.failFirst = 10
	if err := n.SendWithRetry(context.Background(), "hello", 1); err == nil {
		t.Error("expected error once retries are exhausted")
	}
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	f := &fakeTelegram{failFirst: 10}
	n := newFake(t, f)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.SendWithRetry(ctx, "hello", 3); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSendDocument(t *testing.T) {
	f := &fakeTelegram{}
	n := newFake(t, f)
	if err := n.SendDocument("etf_month.csv", []byte("Date,A\n"), "近一個月收盤價"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.documents["etf_month.csv"] != "Date,A\n" {
		t.Errorf("unexpected uploaded content %v", f.documents)
	}
}

func TestPollOnce_DispatchesOwnChatOnly(t *testing.T) {
	f := &fakeTelegram{updates: `{"ok":true,"result":[
		{"update_id":7,"message":{"text":" /report ","chat":{"id":42}}},
		{"update_id":8,"message":{"text":"/report","chat":{"id":99}}},
		{"update_id":9}
	]}`}
	n := newFake(t, f)

	var got []string
	next, err := n.PollOnce(context.Background(), n.Client, 0, func(_ context.Context, cmd string) string {
		got = append(got, cmd)
		return "ack"
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != 10 {
		t.Errorf("expected next offset 10, got %d", next)
	}
	if len(got) != 1 || got[0] != "/report" {
		t.Errorf("expected one trimmed command from own chat, got %v", got)
	}
	if len(f.messages) != 1 || f.messages[0] != "ack" {
		t.Errorf("expected reply to be sent, got %v", f.messages)
	}
}

func TestPollOnce_NotOK(t *testing.T) {
	f := &fakeTelegram{updates: `{"ok":false,"description":"Unauthorized"}`}
	n := newFake(t, f)
	next, err := n.PollOnce(context.Background(), n.Client, 5, func(context.Context, string) string { return "" })
	if err == nil {
		t.Fatal("expected error")
	}
	if next != 5 {
		t.Errorf("offset must not advance on error, got %d", next)
	}
}
