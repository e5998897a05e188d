package rpc

import "zetatrack/internal/modules/probe/domain"

func FromDocument(doc domain.Document) *Node {
	if doc.Root == nil {
		return nil
	}
	return fromNode(doc.Root)
}

func fromNode(n *domain.Node) *Node {
	if n.Kind == domain.TextNode {
		return &Node{Text: n.Data}
	}
	out := &Node{Tag: n.Tag, Children: make([]*Node, 0, len(n.Children))}
	for _, child := range n.Children {
		out.Children = append(out.Children, fromNode(child))
	}
	return out
}

func ToDocument(root *Node) domain.Document {
	if root == nil {
		return domain.Document{}
	}
	return domain.NewDocument(toNode(root))
}

func toNode(n *Node) *domain.Node {
	if n.Tag == "" {
		return domain.NewText(n.Text)
	}
	el := domain.NewElement(n.Tag)
	for _, child := range n.Children {
		if child != nil {
			el.Append(toNode(child))
		}
	}
	return el
}
