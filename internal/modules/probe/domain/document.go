package domain

import (
	"regexp"
	"strings"
)

type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
)

// Node is one node of a rendered surface. Only visible content is kept.
type Node struct {
	Kind     NodeKind
	Tag      string
	Data     string
	Parent   *Node
	Children []*Node
}

func NewElement(tag string, children ...*Node) *Node {
	n := &Node{Kind: ElementNode, Tag: tag}
	for _, child := range children {
		n.Append(child)
	}
	return n
}

func NewText(data string) *Node {
	return &Node{Kind: TextNode, Data: data}
}

func (n *Node) Append(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Text concatenates the text of every descendant text node in document order.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	if n.Kind == TextNode {
		sb.WriteString(n.Data)
		return
	}
	for _, child := range n.Children {
		child.writeText(sb)
	}
}

// Document is a read-only snapshot of a rendering surface.
type Document struct {
	Root *Node
}

func NewDocument(root *Node) Document {
	return Document{Root: root}
}

func (d Document) Empty() bool {
	return d.Root == nil || len(d.Root.Children) == 0
}

func (d Document) Text() string {
	return d.Root.Text()
}

// FindByText returns the innermost element whose concatenated text matches
// pattern, taking the first candidate in document order. A match spanning
// several children resolves to their common ancestor.
func (d Document) FindByText(pattern *regexp.Regexp) (*Node, bool) {
	if d.Root == nil || pattern == nil {
		return nil, false
	}
	if !pattern.MatchString(d.Root.Text()) {
		return nil, false
	}
	current := d.Root
	for {
		next := firstMatchingChild(current, pattern)
		if next == nil {
			return current, true
		}
		current = next
	}
}

func firstMatchingChild(n *Node, pattern *regexp.Regexp) *Node {
	for _, child := range n.Children {
		if child.Kind != ElementNode {
			continue
		}
		if pattern.MatchString(child.Text()) {
			return child
		}
	}
	return nil
}
