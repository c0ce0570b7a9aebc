package tools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newToolsRouter(t *testing.T) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	New(nil).Register(r)
	return r
}

func postJSON(t *testing.T, r chi.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
	return v
}

func TestHandleJSONFormat(t *testing.T) {
	r := newToolsRouter(t)

	rec := postJSON(t, r, "/json/format", `{"json":"{\"a\":1}","mode":"pretty"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[map[string]string](t, rec)
	if !strings.Contains(resp["result"], "\"a\": 1") {
		t.Fatalf("result = %q", resp["result"])
	}

	rec = postJSON(t, r, "/json/format", `{"json":"{bad"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid json: status = %d", rec.Code)
	}
}

func TestHandleYAMLDirectionRequired(t *testing.T) {
	r := newToolsRouter(t)
	rec := postJSON(t, r, "/convert/yaml", `{"input":"{}","direction":"sideways"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleBase64RoundTrip(t *testing.T) {
	r := newToolsRouter(t)

	rec := postJSON(t, r, "/convert/base64", `{"mode":"encode","input":"hi"}`)
	enc := decodeBody[map[string]string](t, rec)["result"]
	if enc != "aGk=" {
		t.Fatalf("encoded = %q", enc)
	}

	rec = postJSON(t, r, "/convert/base64", `{"mode":"decode","input":"aGk="}`)
	if got := decodeBody[map[string]string](t, rec)["result"]; got != "hi" {
		t.Fatalf("decoded = %q", got)
	}
}

func TestHandleUUID(t *testing.T) {
	r := newToolsRouter(t)
	rec := postJSON(t, r, "/uuid", `{"kind":"v4","count":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeBody[map[string][]string](t, rec)
	if len(resp["ids"]) != 3 {
		t.Fatalf("ids = %v", resp["ids"])
	}
}

func TestHandleHash(t *testing.T) {
	r := newToolsRouter(t)
	rec := postJSON(t, r, "/hash", `{"algo":"sha256","text":"abc"}`)
	resp := decodeBody[map[string]string](t, rec)
	if resp["digest"] != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Fatalf("digest = %q", resp["digest"])
	}

	rec = postJSON(t, r, "/hash", `{"algo":"crc32","text":"abc"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown algo: status = %d", rec.Code)
	}
}

func TestHandleQRContentType(t *testing.T) {
	r := newToolsRouter(t)
	rec := postJSON(t, r, "/qr", `{"text":"https://example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content-type = %q", ct)
	}
	// PNG signature.
	if !strings.HasPrefix(rec.Body.String(), "\x89PNG") {
		t.Fatal("body is not a PNG")
	}
}

func TestHandleDiff(t *testing.T) {
	r := newToolsRouter(t)
	rec := postJSON(t, r, "/diff", `{"a":"one\ntwo\n","b":"one\nTWO\n"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Ops      []DiffOp `json:"ops"`
		Inserted int      `json:"inserted"`
		Deleted  int      `json:"deleted"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Inserted != 1 || resp.Deleted != 1 {
		t.Fatalf("stats = +%d -%d", resp.Inserted, resp.Deleted)
	}
}

func TestHandleRegex(t *testing.T) {
	r := newToolsRouter(t)
	rec := postJSON(t, r, "/regex", `{"pattern":"\\d+","input":"a1 b22"}`)
	res := decodeBody[RegexResult](t, rec)
	if !res.Valid || len(res.Matches) != 2 {
		t.Fatalf("result = %+v", res)
	}

	// Compile failure is a 200 with valid=false, not an error status.
	rec = postJSON(t, r, "/regex", `{"pattern":"[","input":"x"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	res = decodeBody[RegexResult](t, rec)
	if res.Valid || res.Error == "" {
		t.Fatalf("result = %+v", res)
	}
}

func TestHandleMarkdownFromHTML(t *testing.T) {
	r := newToolsRouter(t)
	rec := postJSON(t, r, "/markdown/from-html", `{"html":"<h2>Sub</h2>"}`)
	resp := decodeBody[map[string]string](t, rec)
	if !strings.Contains(resp["markdown"], "## Sub") {
		t.Fatalf("markdown = %q", resp["markdown"])
	}
}

func TestHandleInvalidBody(t *testing.T) {
	r := newToolsRouter(t)
	for _, path := range []string{
		"/json/format", "/convert/base64", "/uuid", "/hash", "/diff", "/regex", "/lorem",
	} {
		rec := postJSON(t, r, path, `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}

func TestHandlePDFInspectRequiresFile(t *testing.T) {
	r := newToolsRouter(t)
	rec := postJSON(t, r, "/pdf/inspect", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
