package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type capturingSink struct {
	updates []tgbotapi.Update
}

func (c *capturingSink) ProcessUpdate(_ context.Context, update tgbotapi.Update) {
	c.updates = append(c.updates, update)
}

func TestHomeAndHealth(t *testing.T) {
	s := NewServer(":0", nil, "", nil)

	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("GET / = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "FinBot") {
		t.Errorf("GET / body = %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("GET /healthz body = %q", rr.Body.String())
	}
}

func TestUnknownPathIs404(t *testing.T) {
	s := NewServer(":0", nil, "", nil)

	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("GET /nope = %d, want 404", rr.Code)
	}
}

func TestWebhookDeliversUpdate(t *testing.T) {
	sink := &capturingSink{}
	s := NewServer(":0", sink, "s3cret", nil)

	body := `{"update_id":1,"message":{"message_id":10,"text":"Padaria 12,50 pix","chat":{"id":42}}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/s3cret", strings.NewReader(body))
	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("POST webhook = %d, want 200", rr.Code)
	}
	if len(sink.updates) != 1 {
		t.Fatalf("sink got %d updates, want 1", len(sink.updates))
	}
	if got := sink.updates[0].Message.Text; got != "Padaria 12,50 pix" {
		t.Errorf("update text = %q", got)
	}
}

func TestWebhookRejectsWrongSecret(t *testing.T) {
	sink := &capturingSink{}
	s := NewServer(":0", sink, "s3cret", nil)

	req := httptest.NewRequest(http.MethodPost, "/webhook/wrong", strings.NewReader(`{"update_id":1}`))
	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("wrong secret = %d, want 404", rr.Code)
	}
	if len(sink.updates) != 0 {
		t.Errorf("sink got %d updates, want 0", len(sink.updates))
	}
}

func TestWebhookRejectsBadPayloadAndMethod(t *testing.T) {
	sink := &capturingSink{}
	s := NewServer(":0", sink, "s3cret", nil)

	req := httptest.NewRequest(http.MethodPost, "/webhook/s3cret", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad payload = %d, want 400", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/webhook/s3cret", nil)
	rr = httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET webhook = %d, want 405", rr.Code)
	}
}
