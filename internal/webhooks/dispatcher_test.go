package webhooks

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/joshua-takyi/coachbook/internal/models"
)

type capture struct {
	mu     sync.Mutex
	bodies [][]byte
}

func (c *capture) handler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.bodies = append(c.bodies, body)
		c.mu.Unlock()
		w.WriteHeader(status)
	}
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.bodies)
}

func testDispatcher() *Dispatcher {
	d := NewDispatcher(slog.New(slog.DiscardHandler))
	d.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return d
}

func TestDispatchEnvelope(t *testing.T) {
	var received capture
	srv := httptest.NewServer(received.handler(http.StatusOK))
	defer srv.Close()

	d := testDispatcher()
	hook := models.Webhook{SubscriberURL: srv.URL}
	err := d.Dispatch(context.Background(), models.TriggerBookingConfirmed, &hook, map[string]interface{}{
		"bookingId": "bk-1",
	})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	var envelope struct {
		TriggerEvent string                 `json:"triggerEvent"`
		CreatedAt    string                 `json:"createdAt"`
		Payload      map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(received.bodies[0], &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.TriggerEvent != models.TriggerBookingConfirmed {
		t.Errorf("triggerEvent = %q", envelope.TriggerEvent)
	}
	if envelope.CreatedAt != "2026-03-01T12:00:00Z" {
		t.Errorf("createdAt = %q", envelope.CreatedAt)
	}
	if envelope.Payload["bookingId"] != "bk-1" {
		t.Errorf("payload = %+v", envelope.Payload)
	}
}

func TestDispatchSubscriberError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := testDispatcher()
	hook := models.Webhook{SubscriberURL: srv.URL}
	if err := d.Dispatch(context.Background(), models.TriggerBookingConfirmed, &hook, nil); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestFanOutIsolatesFailures(t *testing.T) {
	var ok1, ok2 capture
	healthy1 := httptest.NewServer(ok1.handler(http.StatusOK))
	defer healthy1.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()
	healthy2 := httptest.NewServer(ok2.handler(http.StatusOK))
	defer healthy2.Close()

	d := testDispatcher()
	hooks := []models.Webhook{
		{SubscriberURL: healthy1.URL},
		{SubscriberURL: broken.URL},
		{SubscriberURL: healthy2.URL},
	}

	// Must not panic or abort: the broken subscriber is logged and skipped.
	d.FanOut(context.Background(), models.TriggerBookingRejected, hooks, map[string]interface{}{"bookingId": "bk-2"})

	if ok1.count() != 1 || ok2.count() != 1 {
		t.Errorf("healthy subscribers received %d and %d deliveries, want 1 and 1", ok1.count(), ok2.count())
	}
}

func TestDispatchPayloadTemplate(t *testing.T) {
	var received capture
	srv := httptest.NewServer(received.handler(http.StatusOK))
	defer srv.Close()

	d := testDispatcher()
	hook := models.Webhook{
		SubscriberURL:   srv.URL,
		PayloadTemplate: `{"id":"{{ bookingId }}","title":"{{title}}","missing":"{{nope}}"}`,
	}
	err := d.Dispatch(context.Background(), models.TriggerBookingConfirmed, &hook, map[string]interface{}{
		"bookingId": "bk-3",
		"title":     "Coaching",
	})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	got := string(received.bodies[0])
	want := `{"id":"bk-3","title":"Coaching","missing":""}`
	if got != want {
		t.Errorf("rendered body = %s, want %s", got, want)
	}
}

func TestRenderTemplateNonStringValue(t *testing.T) {
	out := renderTemplate(`fee={{fee}}`, map[string]interface{}{"fee": 42.5})
	if out != "fee=42.5" {
		t.Errorf("renderTemplate = %q", out)
	}
}
