package tools

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	maxToolBody = 1 << 20  // 1 MiB for text tools
	maxPDFBody  = 20 << 20 // 20 MiB for PDF uploads
)

// Register mounts every tool endpoint on r. All endpoints are stateless
// POST JSON-in/JSON-out transforms except /qr (PNG out) and /pdf/inspect
// (multipart in).
func (s *Service) Register(r chi.Router) {
	r.Post("/markdown/sanitize", s.handleSanitize)
	r.Post("/markdown/from-html", s.handleFromHTML)
	r.Post("/html/extract", s.handleExtract)
	r.Post("/json/format", s.handleJSONFormat)
	r.Post("/convert/yaml", s.handleYAML)
	r.Post("/convert/base64", s.handleBase64)
	r.Post("/convert/url", s.handleURL)
	r.Post("/convert/timestamp", s.handleTimestamp)
	r.Post("/uuid", s.handleUUID)
	r.Post("/hash", s.handleHash)
	r.Post("/qr", s.handleQR)
	r.Post("/diff", s.handleDiff)
	r.Post("/regex", s.handleRegex)
	r.Post("/lorem", s.handleLorem)
	r.Post("/pdf/inspect", s.handlePDFInspect)
}

func (s *Service) handleSanitize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HTML string `json:"html"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": s.SanitizeHTML(req.HTML)})
}

func (s *Service) handleFromHTML(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HTML string `json:"html"`
	}
	if !decode(w, r, &req) {
		return
	}
	md, err := s.FromHTML(req.HTML)
	if err != nil {
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"markdown": md})
}

func (s *Service) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HTML string `json:"html"`
	}
	if !decode(w, r, &req) {
		return
	}
	res, err := s.ExtractText(req.HTML)
	if err != nil {
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Service) handleJSONFormat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JSON string `json:"json"`
		Mode string `json:"mode"` // "pretty" (default) or "minify"
	}
	if !decode(w, r, &req) {
		return
	}
	var out string
	var err error
	if req.Mode == "minify" {
		out, err = MinifyJSON(req.JSON)
	} else {
		out, err = FormatJSON(req.JSON)
	}
	if err != nil {
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": out})
}

func (s *Service) handleYAML(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input     string `json:"input"`
		Direction string `json:"direction"` // "json-to-yaml" or "yaml-to-json"
	}
	if !decode(w, r, &req) {
		return
	}
	var out string
	var err error
	switch req.Direction {
	case "json-to-yaml":
		out, err = JSONToYAML(req.Input)
	case "yaml-to-json":
		out, err = YAMLToJSON(req.Input)
	default:
		jsonErr(w, "direction must be json-to-yaml or yaml-to-json", http.StatusBadRequest)
		return
	}
	if err != nil {
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": out})
}

func (s *Service) handleBase64(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode  string `json:"mode"`
		Input string `json:"input"`
	}
	if !decode(w, r, &req) {
		return
	}
	out, err := Base64(req.Mode, req.Input)
	if err != nil {
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": out})
}

func (s *Service) handleURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode  string `json:"mode"`
		Input string `json:"input"`
	}
	if !decode(w, r, &req) {
		return
	}
	out, err := URLCodec(req.Mode, req.Input)
	if err != nil {
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": out})
}

func (s *Service) handleTimestamp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input string `json:"input"`
	}
	if !decode(w, r, &req) {
		return
	}
	res, err := Timestamp(req.Input)
	if err != nil {
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Service) handleUUID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind  string `json:"kind"`
		Count int    `json:"count"`
	}
	if !decode(w, r, &req) {
		return
	}
	ids, err := UUIDs(req.Kind, req.Count)
	if err != nil {
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ids": ids})
}

func (s *Service) handleHash(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Algo string `json:"algo"`
		Text string `json:"text"`
	}
	if !decode(w, r, &req) {
		return
	}
	digest, err := Digest(req.Algo, req.Text)
	if err != nil {
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"algo": req.Algo, "digest": digest})
}

func (s *Service) handleQR(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Size int    `json:"size"`
	}
	if !decode(w, r, &req) {
		return
	}
	png, err := QRCodePNG(req.Text, req.Size)
	if err != nil {
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Service) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		A string `json:"a"`
		B string `json:"b"`
	}
	if !decode(w, r, &req) {
		return
	}
	ops := DiffLines(req.A, req.B)
	inserted, deleted := DiffStats(ops)
	writeJSON(w, http.StatusOK, map[string]any{
		"ops":      ops,
		"inserted": inserted,
		"deleted":  deleted,
	})
}

func (s *Service) handleRegex(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pattern string `json:"pattern"`
		Input   string `json:"input"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, TestRegex(req.Pattern, req.Input))
}

func (s *Service) handleLorem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Unit  string `json:"unit"`
		Count int    `json:"count"`
	}
	if !decode(w, r, &req) {
		return
	}
	text, err := Lorem(req.Unit, req.Count)
	if err != nil {
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (s *Service) handlePDFInspect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPDFBody)
	file, _, err := r.FormFile("file")
	if err != nil {
		jsonErr(w, "file upload required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	info, err := InspectPDF(file)
	if err != nil {
		jsonErr(w, "not a readable pdf", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// decode reads a JSON body into v, answering 400 on failure. The body is
// capped at maxToolBody.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxToolBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
