package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/joshua-takyi/coachbook/internal/models"
)

const dispatchTimeout = 10 * time.Second

var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Dispatcher delivers webhook payloads to subscriber endpoints.
type Dispatcher struct {
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		client: &http.Client{Timeout: dispatchTimeout},
		logger: logger,
		now:    time.Now,
	}
}

// Dispatch POSTs the payload to one subscriber. A payload template, when
// present, replaces the default envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, trigger string, hook *models.Webhook, payload map[string]interface{}) error {
	var body []byte
	var err error

	if hook.PayloadTemplate != "" {
		body = []byte(renderTemplate(hook.PayloadTemplate, payload))
	} else {
		body, err = json.Marshal(map[string]interface{}{
			"triggerEvent": trigger,
			"createdAt":    d.now().UTC().Format(time.RFC3339),
			"payload":      payload,
		})
		if err != nil {
			return fmt.Errorf("marshal webhook payload: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hook.SubscriberURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("subscriber responded %d", resp.StatusCode)
	}
	return nil
}

// FanOut delivers the payload to every subscriber concurrently. Each failure
// is logged individually; one subscriber can never block or fail delivery to
// the others, and the caller never sees an error.
func (d *Dispatcher) FanOut(ctx context.Context, trigger string, hooks []models.Webhook, payload map[string]interface{}) {
	var wg sync.WaitGroup
	for i := range hooks {
		hook := hooks[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.Dispatch(ctx, trigger, &hook, payload); err != nil {
				d.logger.Error("Webhook dispatch failed",
					"trigger", trigger,
					"subscriber_url", hook.SubscriberURL,
					"error", err,
				)
			}
		}()
	}
	wg.Wait()
}

// renderTemplate substitutes {{field}} placeholders with values from the
// payload. Strings are inserted verbatim, everything else as JSON.
func renderTemplate(template string, payload map[string]interface{}) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := payload[key]
		if !ok {
			return ""
		}
		if s, ok := value.(string); ok {
			return s
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(encoded)
	})
}
