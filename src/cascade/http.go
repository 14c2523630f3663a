package cascade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPTrigger invokes the matcher's auto-match endpoint with a POST.
type HTTPTrigger struct {
	url        string
	httpClient *http.Client
}

func NewHTTPTrigger(url string, timeout time.Duration) *HTTPTrigger {
	if timeout <= 0 {
		timeout = DefaultEmitTimeout
	}
	return &HTTPTrigger{url: url, httpClient: &http.Client{Timeout: timeout}}
}

func (h *HTTPTrigger) Emit(ctx context.Context, event TransactionsImported) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return &CascadeError{Sink: "http", EventID: event.EventID, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(payload))
	if err != nil {
		return &CascadeError{Sink: "http", EventID: event.EventID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", event.EventID)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return &CascadeError{Sink: "http", EventID: event.EventID, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &CascadeError{Sink: "http", EventID: event.EventID, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return nil
}

func (h *HTTPTrigger) Close() error { return nil }
