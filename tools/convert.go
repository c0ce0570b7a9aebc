package tools

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FormatJSON validates and pretty-prints a JSON document with two-space
// indentation.
func FormatJSON(input string) (string, error) {
	if !gojson.Valid([]byte(input)) {
		return "", fmt.Errorf("tools: invalid json")
	}
	var buf bytes.Buffer
	if err := gojson.Indent(&buf, []byte(input), "", "  "); err != nil {
		return "", fmt.Errorf("tools: format json: %w", err)
	}
	return buf.String(), nil
}

// MinifyJSON validates and compacts a JSON document.
func MinifyJSON(input string) (string, error) {
	if !gojson.Valid([]byte(input)) {
		return "", fmt.Errorf("tools: invalid json")
	}
	var buf bytes.Buffer
	if err := gojson.Compact(&buf, []byte(input)); err != nil {
		return "", fmt.Errorf("tools: minify json: %w", err)
	}
	return buf.String(), nil
}

// JSONToYAML converts a JSON document to YAML.
func JSONToYAML(input string) (string, error) {
	var v any
	if err := gojson.Unmarshal([]byte(input), &v); err != nil {
		return "", fmt.Errorf("tools: invalid json: %w", err)
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("tools: yaml marshal: %w", err)
	}
	return string(out), nil
}

// YAMLToJSON converts a YAML document to pretty-printed JSON.
func YAMLToJSON(input string) (string, error) {
	var v any
	if err := yaml.Unmarshal([]byte(input), &v); err != nil {
		return "", fmt.Errorf("tools: invalid yaml: %w", err)
	}
	out, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("tools: json marshal: %w", err)
	}
	return string(out), nil
}

// Base64 encodes or decodes text. mode is "encode" or "decode"; decoding
// accepts both standard and URL-safe alphabets, with or without padding.
func Base64(mode, input string) (string, error) {
	switch mode {
	case "encode":
		return base64.StdEncoding.EncodeToString([]byte(input)), nil
	case "decode":
		for _, enc := range []*base64.Encoding{
			base64.StdEncoding, base64.RawStdEncoding,
			base64.URLEncoding, base64.RawURLEncoding,
		} {
			if out, err := enc.DecodeString(strings.TrimSpace(input)); err == nil {
				return string(out), nil
			}
		}
		return "", fmt.Errorf("tools: invalid base64")
	default:
		return "", fmt.Errorf("tools: unknown base64 mode %q", mode)
	}
}

// URLCodec percent-encodes or -decodes text. mode is "encode" or "decode".
func URLCodec(mode, input string) (string, error) {
	switch mode {
	case "encode":
		return url.QueryEscape(input), nil
	case "decode":
		out, err := url.QueryUnescape(input)
		if err != nil {
			return "", fmt.Errorf("tools: invalid url encoding: %w", err)
		}
		return out, nil
	default:
		return "", fmt.Errorf("tools: unknown url mode %q", mode)
	}
}

// TimestampResult is one timestamp rendered in the common exchange formats.
type TimestampResult struct {
	Unix    int64  `json:"unix"`
	UnixMs  int64  `json:"unixMs"`
	RFC3339 string `json:"rfc3339"`
	UTC     string `json:"utc"`
}

// Timestamp interprets input as a unix timestamp (seconds or milliseconds)
// or an RFC 3339 string; empty input means now.
func Timestamp(input string) (*TimestampResult, error) {
	var t time.Time
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		t = time.Now()
	default:
		if n, err := strconv.ParseInt(input, 10, 64); err == nil {
			// Heuristic: values this large are milliseconds.
			if n > 1e12 {
				t = time.UnixMilli(n)
			} else {
				t = time.Unix(n, 0)
			}
		} else if parsed, err := time.Parse(time.RFC3339, input); err == nil {
			t = parsed
		} else {
			return nil, fmt.Errorf("tools: unrecognized timestamp %q", input)
		}
	}
	t = t.UTC()
	return &TimestampResult{
		Unix:    t.Unix(),
		UnixMs:  t.UnixMilli(),
		RFC3339: t.Format(time.RFC3339),
		UTC:     t.Format(time.RFC1123),
	}, nil
}
