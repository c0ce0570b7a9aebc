package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterMCP registers the text-transform utilities as MCP tools on srv,
// so agent clients can call the same transforms the HTTP API serves.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerFromHTMLTool(srv)
	s.registerJSONFormatTool(srv)
	s.registerYAMLTool(srv)
	s.registerUUIDTool(srv)
	s.registerHashTool(srv)
	s.registerDiffTool(srv)
	s.registerRegexTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	sc := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sc["required"] = required
	}
	return sc
}

// registerTool wires a typed endpoint as an MCP tool: decode arguments,
// run, marshal the result as a single text content block. Tool failures are
// reported through the result error channel, never as protocol errors.
func registerTool[Req any](srv *mcp.Server, tool *mcp.Tool, run func(context.Context, *Req) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r Req
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("invalid arguments: %w", err))
			return &res, nil
		}

		resp, err := run(ctx, &r)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(errors.New(err.Error()))
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

func (s *Service) registerFromHTMLTool(srv *mcp.Server) {
	type req struct {
		HTML string `json:"html"`
	}
	tool := &mcp.Tool{
		Name:        "util_html_to_markdown",
		Description: "Convert an HTML fragment or document to Markdown.",
		InputSchema: inputSchema(map[string]any{
			"html": map[string]any{"type": "string", "description": "HTML to convert"},
		}, []string{"html"}),
	}
	registerTool(srv, tool, func(_ context.Context, r *req) (any, error) {
		md, err := s.FromHTML(r.HTML)
		if err != nil {
			return nil, err
		}
		return map[string]string{"markdown": md}, nil
	})
}

func (s *Service) registerJSONFormatTool(srv *mcp.Server) {
	type req struct {
		JSON string `json:"json"`
		Mode string `json:"mode"`
	}
	tool := &mcp.Tool{
		Name:        "util_json_format",
		Description: "Validate and pretty-print (or minify) a JSON document.",
		InputSchema: inputSchema(map[string]any{
			"json": map[string]any{"type": "string", "description": "JSON document"},
			"mode": map[string]any{"type": "string", "description": "pretty (default) or minify"},
		}, []string{"json"}),
	}
	registerTool(srv, tool, func(_ context.Context, r *req) (any, error) {
		var out string
		var err error
		if r.Mode == "minify" {
			out, err = MinifyJSON(r.JSON)
		} else {
			out, err = FormatJSON(r.JSON)
		}
		if err != nil {
			return nil, err
		}
		return map[string]string{"result": out}, nil
	})
}

func (s *Service) registerYAMLTool(srv *mcp.Server) {
	type req struct {
		Input     string `json:"input"`
		Direction string `json:"direction"`
	}
	tool := &mcp.Tool{
		Name:        "util_yaml_convert",
		Description: "Convert between JSON and YAML.",
		InputSchema: inputSchema(map[string]any{
			"input":     map[string]any{"type": "string", "description": "Document to convert"},
			"direction": map[string]any{"type": "string", "description": "json-to-yaml or yaml-to-json"},
		}, []string{"input", "direction"}),
	}
	registerTool(srv, tool, func(_ context.Context, r *req) (any, error) {
		var out string
		var err error
		switch r.Direction {
		case "json-to-yaml":
			out, err = JSONToYAML(r.Input)
		case "yaml-to-json":
			out, err = YAMLToJSON(r.Input)
		default:
			return nil, fmt.Errorf("direction must be json-to-yaml or yaml-to-json")
		}
		if err != nil {
			return nil, err
		}
		return map[string]string{"result": out}, nil
	})
}

func (s *Service) registerUUIDTool(srv *mcp.Server) {
	type req struct {
		Kind  string `json:"kind"`
		Count int    `json:"count"`
	}
	tool := &mcp.Tool{
		Name:        "util_uuid",
		Description: "Generate UUIDs (v4, v7) or short base-36 ids.",
		InputSchema: inputSchema(map[string]any{
			"kind":  map[string]any{"type": "string", "description": "v4 (default), v7 or short"},
			"count": map[string]any{"type": "integer", "description": "How many to generate (1-100)"},
		}, nil),
	}
	registerTool(srv, tool, func(_ context.Context, r *req) (any, error) {
		ids, err := UUIDs(r.Kind, r.Count)
		if err != nil {
			return nil, err
		}
		return map[string]any{"ids": ids}, nil
	})
}

func (s *Service) registerHashTool(srv *mcp.Server) {
	type req struct {
		Algo string `json:"algo"`
		Text string `json:"text"`
	}
	tool := &mcp.Tool{
		Name:        "util_hash",
		Description: "Hash text with md5, sha1, sha256 (default), sha512 or bcrypt.",
		InputSchema: inputSchema(map[string]any{
			"algo": map[string]any{"type": "string", "description": "Hash algorithm"},
			"text": map[string]any{"type": "string", "description": "Text to hash"},
		}, []string{"text"}),
	}
	registerTool(srv, tool, func(_ context.Context, r *req) (any, error) {
		digest, err := Digest(r.Algo, r.Text)
		if err != nil {
			return nil, err
		}
		return map[string]string{"digest": digest}, nil
	})
}

func (s *Service) registerDiffTool(srv *mcp.Server) {
	type req struct {
		A string `json:"a"`
		B string `json:"b"`
	}
	tool := &mcp.Tool{
		Name:        "util_diff",
		Description: "Line-level diff between two texts.",
		InputSchema: inputSchema(map[string]any{
			"a": map[string]any{"type": "string", "description": "Original text"},
			"b": map[string]any{"type": "string", "description": "Changed text"},
		}, []string{"a", "b"}),
	}
	registerTool(srv, tool, func(_ context.Context, r *req) (any, error) {
		ops := DiffLines(r.A, r.B)
		inserted, deleted := DiffStats(ops)
		return map[string]any{"ops": ops, "inserted": inserted, "deleted": deleted}, nil
	})
}

func (s *Service) registerRegexTool(srv *mcp.Server) {
	type req struct {
		Pattern string `json:"pattern"`
		Input   string `json:"input"`
	}
	tool := &mcp.Tool{
		Name:        "util_regex",
		Description: "Test a Go (RE2) regular expression against input text.",
		InputSchema: inputSchema(map[string]any{
			"pattern": map[string]any{"type": "string", "description": "Regular expression"},
			"input":   map[string]any{"type": "string", "description": "Text to match against"},
		}, []string{"pattern"}),
	}
	registerTool(srv, tool, func(_ context.Context, r *req) (any, error) {
		return TestRegex(r.Pattern, r.Input), nil
	})
}
