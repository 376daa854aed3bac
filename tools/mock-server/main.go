// Package main implements a mock Discord webhook server for local development.
// It accepts webhook posts, logs each embed and keeps the most recent payloads
// in memory so notifications can be inspected without a real Discord channel.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

type webhookPayload struct {
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Content   string         `json:"content,omitempty"`
	Embeds    []webhookEmbed `json:"embeds,omitempty"`
}

type webhookEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp,omitempty"`
	Fields      []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"fields,omitempty"`
}

// received is one captured webhook call.
type received struct {
	Webhook    string         `json:"webhook"`
	ReceivedAt time.Time      `json:"received_at"`
	Payload    webhookPayload `json:"payload"`
}

// inbox keeps the last max payloads.
type inbox struct {
	mu    sync.Mutex
	max   int
	items []received
	calls int
}

func newInbox(maxItems int) *inbox {
	return &inbox{max: maxItems}
}

// next counts a call and returns its 1-based sequence number.
func (b *inbox) next() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	return b.calls
}

func (b *inbox) add(r received) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, r)
	if len(b.items) > b.max {
		b.items = b.items[len(b.items)-b.max:]
	}
}

func (b *inbox) list() []received {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]received{}, b.items...)
}

func (b *inbox) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
}

// faults makes every Nth call fail. Zero disables a fault.
type faults struct {
	failEvery      int
	rateLimitEvery int
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	keep := flag.Int("keep", 100, "number of payloads to keep for GET /messages")
	failEvery := flag.Int("fail-every", 0, "answer every Nth webhook call with 500")
	rateLimitEvery := flag.Int("rate-limit-every", 0, "answer every Nth webhook call with 429")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	box := newInbox(*keep)
	f := faults{failEvery: *failEvery, rateLimitEvery: *rateLimitEvery}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/webhooks/{id}/{token}", webhookHandler(logger, box, f))
	mux.HandleFunc("GET /messages", messagesHandler(box))
	mux.HandleFunc("DELETE /messages", clearHandler(logger, box))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Discord server", "addr", addr,
		"webhook_url", fmt.Sprintf("http://localhost:%d/api/webhooks/1/local", *port))

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func webhookHandler(logger *slog.Logger, box *inbox, f faults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := box.next()

		if f.rateLimitEvery > 0 && n%f.rateLimitEvery == 0 {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"message":     "You are being rate limited.",
				"retry_after": 1.0,
				"global":      false,
			})
			logger.Warn("injected rate limit", "call", n)
			return
		}
		if f.failEvery > 0 && n%f.failEvery == 0 {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "500: Internal Server Error", "code": 0})
			logger.Warn("injected failure", "call", n)
			return
		}

		var p webhookPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Cannot send an empty message", "code": 50006})
			return
		}
		if p.Content == "" && len(p.Embeds) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Cannot send an empty message", "code": 50006})
			return
		}
		if len(p.Embeds) > 10 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid Form Body", "code": 50035})
			return
		}

		box.add(received{
			Webhook:    r.PathValue("id"),
			ReceivedAt: time.Now().UTC(),
			Payload:    p,
		})

		for _, e := range p.Embeds {
			logger.Info("embed",
				"webhook", r.PathValue("id"),
				"username", p.Username,
				"title", e.Title,
				"color", "#"+strconv.FormatInt(int64(e.Color), 16),
				"fields", len(e.Fields),
			)
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func messagesHandler(box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, box.list())
	}
}

func clearHandler(logger *slog.Logger, box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		box.clear()
		logger.Info("cleared messages")
		w.WriteHeader(http.StatusNoContent)
	}
}
