package out

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"zetatrack/internal/modules/probe/domain"
)

var invisibleTags = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Iframe:   true,
	atom.Svg:      true,
}

// ParseHTML converts markup into a Document holding the visible body content.
func ParseHTML(r io.Reader) (domain.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return domain.Document{}, fmt.Errorf("parse html: %w", err)
	}
	start := findBody(root)
	if start == nil {
		start = root
	}
	body := domain.NewElement("body")
	for c := start.FirstChild; c != nil; c = c.NextSibling {
		if child := convert(c); child != nil {
			body.Append(child)
		}
	}
	return domain.NewDocument(body), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}

func convert(n *html.Node) *domain.Node {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return nil
		}
		return domain.NewText(n.Data)
	case html.ElementNode:
		if invisibleTags[n.DataAtom] || hidden(n) {
			return nil
		}
		el := domain.NewElement(n.Data)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				el.Append(child)
			}
		}
		return el
	case html.DocumentNode:
		el := domain.NewElement("#document")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				el.Append(child)
			}
		}
		return el
	default:
		return nil
	}
}

func hidden(n *html.Node) bool {
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "hidden":
			return true
		case "aria-hidden":
			if attr.Val == "true" {
				return true
			}
		case "style":
			compact := strings.ReplaceAll(strings.ToLower(attr.Val), " ", "")
			if strings.Contains(compact, "display:none") || strings.Contains(compact, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}
