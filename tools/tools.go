// Package tools implements the server-side developer utilities: text and
// data-format converters, generators and inspectors. Every tool is a
// stateless transformation over caller-supplied input; invalid input is
// reported as a client error, never as an internal failure.
//
// The tools are exposed over HTTP (see Service.Register) and, optionally, as MCP
// tools (see RegisterMCP).
package tools

import (
	"log/slog"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// Service holds the shared tool state: the HTML→Markdown converter and the
// HTML sanitizer policy, both safe for concurrent use.
type Service struct {
	logger    *slog.Logger
	md        *converter.Converter
	sanitizer *bluemonday.Policy
}

// New creates a Service.
func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger: logger,
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}
