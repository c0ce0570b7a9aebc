package analytics

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
)

// Handler serves the track and stats endpoints.
type Handler struct {
	svc    *Service
	secret string
	logger *slog.Logger
}

// NewHandler creates a Handler. secret is the Bearer credential required by
// the stats endpoint.
func NewHandler(svc *Service, secret string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, secret: secret, logger: logger}
}

// Register mounts the analytics routes on r.
//
//	POST /track — record one page view
//	GET  /stats — aggregate statistics (Bearer auth)
func (h *Handler) Register(r chi.Router) {
	r.Post("/track", h.Track)
	r.Get("/stats", h.Stats)
}

// Track records one page view. Success is 204 with no body; a missing or
// non-string path is rejected with 400 before any write.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4*1024)

	var req struct {
		Path        any             `json:"path"`
		Referrer    string          `json:"referrer"`
		ScreenWidth json.RawMessage `json:"screenWidth"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return
	}
	path, ok := req.Path.(string)
	if !ok || path == "" {
		jsonErr(w, "path required", http.StatusBadRequest)
		return
	}

	// Unknown addresses record an empty hash; those views count in totals
	// but are excluded from the unique-visitor count.
	visitorHash := ""
	if addr := clientAddr(r); addr != "" {
		visitorHash = VisitorHash(addr, time.Now())
	}

	v := View{
		Path:        truncate(path, MaxFieldLen),
		Referrer:    truncate(req.Referrer, MaxFieldLen),
		ScreenWidth: screenWidth(req.ScreenWidth),
		UserAgent:   truncate(r.UserAgent(), MaxFieldLen),
		VisitorHash: visitorHash,
	}
	if err := h.svc.Record(r.Context(), v); err != nil {
		h.logger.Error("track: record view", "error", err, "path", v.Path)
		jsonErr(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats returns the aggregate snapshot for the requested trailing window.
// The days parameter is clamped to [1, 365] and defaults to 30.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		jsonErr(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	days := queryInt(r, "days", 30)
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}

	snap, err := h.svc.Stats(r.Context(), days)
	if err != nil {
		h.logger.Error("stats: aggregate", "error", err, "days", days)
		jsonErr(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (h *Handler) authorized(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	want := "Bearer " + h.secret
	return subtle.ConstantTimeCompare([]byte(auth), []byte(want)) == 1
}

// clientAddr resolves the caller's network address: the first entry of
// X-Forwarded-For if present, otherwise the transport address without port.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if addr := strings.TrimSpace(first); addr != "" {
			return addr
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// screenWidth coerces the raw JSON value to a non-negative integer,
// defaulting to 0 for absent, non-numeric or out-of-range input. The range
// check happens on the float, before the int conversion can overflow.
func screenWidth(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	if f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// truncate caps s at max characters (not bytes), so multi-byte input never
// splits mid-rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
