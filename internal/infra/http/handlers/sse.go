package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/xavierca1/sales-os/internal/usecase"
)

const heartbeatInterval = 25 * time.Second

// stream mantém a conexão SSE aberta repassando os eventos do broadcaster.
func stream[T any](w http.ResponseWriter, r *http.Request, b *usecase.Broadcaster[T], eventName func(T) string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErrorResponse(w, http.StatusInternalServerError, "STREAM_UNSUPPORTED", "streaming não suportado")
		return
	}

	events, cancel := b.Subscribe()
	defer cancel()

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case v, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(v)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventName(v), data)
			flusher.Flush()
		}
	}
}
