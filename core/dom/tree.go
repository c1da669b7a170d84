// Package dom holds the parsed document tree the Markdown converter walks.
// Nodes live in a flat arena owned by the Tree; a node refers to its parent
// and children by NodeID, so upward queries never hold a back-pointer.
package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// NodeID indexes a node inside its Tree.
type NodeID int32

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

// Kind enumerates the node variants kept in the arena.
type Kind uint8

const (
	DocumentNode Kind = iota // tree root
	ElementNode              // tag with attributes and children
	TextNode                 // character data
	OtherNode                // comments and anything else the parser yields
)

func (k Kind) String() string {
	switch k {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	default:
		return "other"
	}
}

// Attr is a single name/value attribute pair in source order.
type Attr struct {
	Name  string
	Value string
}

type slot struct {
	kind     Kind
	tag      string
	text     string
	attrs    []Attr
	parent   NodeID
	children []NodeID
}

// Tree is an immutable document tree produced by Parse.
type Tree struct {
	nodes []slot
}

// Parse runs the HTML5 tree construction algorithm over r and flattens the
// result into a Tree. Doctype declarations are dropped.
func Parse(r io.Reader) (*Tree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	t := &Tree{}
	t.add(doc, NoNode)
	return t, nil
}

// ParseString is Parse over an in-memory document or fragment.
func ParseString(s string) (*Tree, error) {
	return Parse(strings.NewReader(s))
}

func (t *Tree) add(src *html.Node, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	s := slot{parent: parent}
	switch src.Type {
	case html.DocumentNode:
		s.kind = DocumentNode
	case html.ElementNode:
		s.kind = ElementNode
		s.tag = strings.ToLower(src.Data)
		if len(src.Attr) > 0 {
			s.attrs = make([]Attr, 0, len(src.Attr))
			for _, a := range src.Attr {
				s.attrs = append(s.attrs, Attr{Name: a.Key, Value: a.Val})
			}
		}
	case html.TextNode:
		s.kind = TextNode
		s.text = src.Data
	default:
		s.kind = OtherNode
	}
	t.nodes = append(t.nodes, s)

	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			continue
		}
		child := t.add(c, id)
		t.nodes[id].children = append(t.nodes[id].children, child)
	}
	return id
}

// Len reports the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the document node.
func (t *Tree) Root() Node {
	if len(t.nodes) == 0 {
		return Node{}
	}
	return Node{tree: t, id: 0}
}

// Node returns the node stored under id, or an invalid Node.
func (t *Tree) Node(id NodeID) Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}
	}
	return Node{tree: t, id: id}
}
