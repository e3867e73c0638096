package modelxml

// NodeKind discriminates the node types held in a behavior tree.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
)

// Attr is a single element attribute. Attributes keep their source order.
type Attr struct {
	Name  string
	Value string
}

// Node is one node of a parsed ModelBehaviors tree. Element nodes carry a
// name, ordered attributes and children; text and comment nodes carry only
// their content. Parent pointers stay consistent through AppendChild and
// Detach, so a detached subtree can simply be discarded.
type Node struct {
	Kind     NodeKind
	Name     string
	Text     string
	Attrs    []Attr
	Parent   *Node
	Children []*Node
}

// NewElement returns a parentless element node.
func NewElement(name string) *Node {
	return &Node{Kind: ElementNode, Name: name}
}

// NewText returns a parentless text node.
func NewText(text string) *Node {
	return &Node{Kind: TextNode, Text: text}
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// SetAttr updates the named attribute in place, or appends it.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value

			return
		}
	}

	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// AppendChild adds c as the last child of n and reparents it.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Detach removes n from its parent. Detaching a root is a no-op.
func (n *Node) Detach() {
	p := n.Parent
	if p == nil {
		return
	}

	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)

			break
		}
	}

	n.Parent = nil
}

// FirstChildElement returns the first element child of n, or nil.
func (n *Node) FirstChildElement() *Node {
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			return c
		}
	}

	return nil
}

// FindByAttr walks the subtree rooted at n and collects every element whose
// named attribute equals value, in document order. The root itself is a
// candidate. Callers check the result length to detect missing or ambiguous
// matches.
func FindByAttr(n *Node, name, value string) []*Node {
	var found []*Node

	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.Kind != ElementNode {
			return
		}

		if v, ok := cur.Attr(name); ok && v == value {
			found = append(found, cur)
		}

		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)

	return found
}

// CountElements returns the number of element nodes in the subtree rooted at
// n, including n itself.
func CountElements(n *Node) int {
	if n.Kind != ElementNode {
		return 0
	}

	count := 1
	for _, c := range n.Children {
		count += CountElements(c)
	}

	return count
}
