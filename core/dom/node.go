package dom

// Node is a read-only view of one arena slot. The zero value is invalid and
// answers every query with an empty result.
type Node struct {
	tree *Tree
	id   NodeID
}

func (n Node) slot() *slot {
	if n.tree == nil {
		return nil
	}
	return &n.tree.nodes[n.id]
}

// Valid reports whether n refers to a node.
func (n Node) Valid() bool {
	return n.tree != nil
}

// ID returns the arena index of n, NoNode for an invalid node.
func (n Node) ID() NodeID {
	if n.tree == nil {
		return NoNode
	}
	return n.id
}

func (n Node) Kind() Kind {
	if s := n.slot(); s != nil {
		return s.kind
	}
	return OtherNode
}

// Tag returns the lower-case element name, empty for non-elements.
func (n Node) Tag() string {
	if s := n.slot(); s != nil {
		return s.tag
	}
	return ""
}

// Text returns the character data of a text node.
func (n Node) Text() string {
	if s := n.slot(); s != nil {
		return s.text
	}
	return ""
}

// Attrs returns the attributes in source order. The slice must not be modified.
func (n Node) Attrs() []Attr {
	if s := n.slot(); s != nil {
		return s.attrs
	}
	return nil
}

// Attr returns the value of the first attribute called name.
func (n Node) Attr(name string) (string, bool) {
	return Lookup(n.Attrs(), name)
}

// Parent returns the enclosing node, invalid for the root.
func (n Node) Parent() Node {
	s := n.slot()
	if s == nil || s.parent == NoNode {
		return Node{}
	}
	return Node{tree: n.tree, id: s.parent}
}

// ParentTag is a shorthand for n.Parent().Tag().
func (n Node) ParentTag() string {
	return n.Parent().Tag()
}

// Children returns the child nodes in document order.
func (n Node) Children() []Node {
	s := n.slot()
	if s == nil || len(s.children) == 0 {
		return nil
	}
	out := make([]Node, len(s.children))
	for i, id := range s.children {
		out[i] = Node{tree: n.tree, id: id}
	}
	return out
}

// FirstChild returns the first child, invalid when n has none.
func (n Node) FirstChild() Node {
	s := n.slot()
	if s == nil || len(s.children) == 0 {
		return Node{}
	}
	return Node{tree: n.tree, id: s.children[0]}
}

// Index returns the position of n among its parent's children, -1 for the root.
func (n Node) Index() int {
	p := n.Parent()
	if !p.Valid() {
		return -1
	}
	for i, id := range p.slot().children {
		if id == n.id {
			return i
		}
	}
	return -1
}

// PrecedingSiblings counts the element siblings before n whose tag is tag.
func (n Node) PrecedingSiblings(tag string) int {
	p := n.Parent()
	if !p.Valid() {
		return 0
	}
	count := 0
	for _, id := range p.slot().children {
		if id == n.id {
			break
		}
		sib := &n.tree.nodes[id]
		if sib.kind == ElementNode && sib.tag == tag {
			count++
		}
	}
	return count
}

// Lookup finds the first attribute called name.
func Lookup(attrs []Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
