package tools

import (
	"fmt"
	"strings"
)

// SanitizeHTML strips scripts, event handlers and other unsafe markup from
// untrusted HTML, keeping the user-generated-content subset. The output is
// what the markdown preview is allowed to render.
func (s *Service) SanitizeHTML(input string) string {
	return s.sanitizer.Sanitize(input)
}

// FromHTML converts an HTML fragment or document to Markdown.
func (s *Service) FromHTML(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("tools: html input is empty")
	}
	md, err := s.md.ConvertString(input)
	if err != nil {
		return "", fmt.Errorf("tools: convert html: %w", err)
	}
	return md, nil
}
