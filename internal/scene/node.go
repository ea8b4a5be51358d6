// Package scene holds the in-memory scene tree consumed by the renderer.
package scene

// Node is a vertex in the scene tree. A node has exactly one parent; sub-trees are never shared.
type Node struct {
	Name       string
	Components []Component
	Children   []*Node
}

// NewNode creates a node with the given components.
func NewNode(name string, components ...Component) *Node {
	return &Node{Name: name, Components: components}
}

// AddComponent appends a component and returns the node for chaining.
func (n *Node) AddComponent(c Component) *Node {
	n.Components = append(n.Components, c)
	return n
}

// AddChild appends children and returns the node for chaining.
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Transform returns the first Transform component, or nil.
func (n *Node) Transform() *Transform {
	for _, c := range n.Components {
		if t, ok := c.(*Transform); ok {
			return t
		}
	}
	return nil
}

// Weight returns the first Weight component, or nil.
func (n *Node) Weight() *Weight {
	for _, c := range n.Components {
		if w, ok := c.(*Weight); ok {
			return w
		}
	}
	return nil
}

// Has reports whether the node carries a component of the given kind.
func (n *Node) Has(k Kind) bool {
	for _, c := range n.Components {
		if c.Kind() == k {
			return true
		}
	}
	return false
}
