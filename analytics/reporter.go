package analytics

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Reporter sends page-view reports to a track endpoint, fire-and-forget.
//
// Report never blocks and never returns an error: views are queued on a
// bounded channel and dropped when it is full, and transmission failures are
// logged at debug level only. View tracking must not interfere with the
// application using it.
//
// Usage:
//
//	rep := analytics.NewReporter("https://tools.example.com/api/track", nil)
//	defer rep.Close()
//	rep.Report("/markdown")
type Reporter struct {
	url    string
	client *http.Client
	ch     chan viewReport
	done   chan struct{}
	once   sync.Once

	mu       sync.Mutex
	lastPath string
}

type viewReport struct {
	Path        string `json:"path"`
	Referrer    string `json:"referrer"`
	ScreenWidth int    `json:"screenWidth"`
	Timestamp   int64  `json:"timestamp"`
}

// NewReporter creates a Reporter that POSTs view reports to url.
// If client is nil, a default client with a 5s timeout is used.
func NewReporter(url string, client *http.Client) *Reporter {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	r := &Reporter{
		url:    url,
		client: client,
		ch:     make(chan viewReport, 64),
		done:   make(chan struct{}),
	}
	go r.sendLoop()
	return r
}

// Report queues one view for path. Consecutive reports for the same path are
// collapsed: only the first is sent. Non-blocking; drops if the queue is full.
func (r *Reporter) Report(path string) {
	r.mu.Lock()
	if path == r.lastPath {
		r.mu.Unlock()
		return
	}
	r.lastPath = path
	r.mu.Unlock()

	v := viewReport{Path: path, Timestamp: time.Now().UnixMilli()}
	select {
	case r.ch <- v:
	default:
	}
}

// Close drains the queue and stops the send goroutine.
func (r *Reporter) Close() error {
	r.once.Do(func() {
		close(r.ch)
		<-r.done
	})
	return nil
}

func (r *Reporter) sendLoop() {
	defer close(r.done)
	for v := range r.ch {
		r.send(v)
	}
}

func (r *Reporter) send(v viewReport) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Debug("analytics reporter: marshal", "error", err)
		return
	}
	resp, err := r.client.Post(r.url, "application/json", bytes.NewReader(body))
	if err != nil {
		slog.Debug("analytics reporter: post", "error", err, "path", v.Path)
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		slog.Debug("analytics reporter: rejected", "status", resp.StatusCode, "path", v.Path)
	}
}
