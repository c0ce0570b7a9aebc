package tools

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractResult is the plain-text projection of an HTML document.
type ExtractResult struct {
	Title string   `json:"title"`
	Text  string   `json:"text"`
	Links []string `json:"links"`
}

// ExtractText parses an HTML document and returns its title, visible text
// and outbound link targets. Script, style and template subtrees are skipped.
func (s *Service) ExtractText(input string) (*ExtractResult, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("tools: parse html: %w", err)
	}

	res := &ExtractResult{Links: []string{}}
	var walk func(n *html.Node)
	var text []string
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Template, atom.Noscript:
				return
			case atom.Title:
				if res.Title == "" && n.FirstChild != nil {
					res.Title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			case atom.A:
				for _, a := range n.Attr {
					if a.Key == "href" && a.Val != "" && !strings.HasPrefix(a.Val, "#") {
						res.Links = append(res.Links, a.Val)
					}
				}
			}
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				text = append(text, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	res.Text = strings.Join(text, " ")
	return res, nil
}
