package scene

// Scene is the root of a scene tree.
type Scene struct {
	Name     string
	Children []*Node
}

// New creates a scene with the given root nodes.
func New(name string, roots ...*Node) *Scene {
	return &Scene{Name: name, Children: roots}
}

// Walk visits every node depth-first, parent before children.
// Returning false from fn skips the node's children.
func (s *Scene) Walk(fn func(n *Node, depth int) bool) {
	for _, root := range s.Children {
		walk(root, 0, fn)
	}
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// FindByName returns the first node with the given name in traversal order.
func (s *Scene) FindByName(name string) *Node {
	var found *Node
	s.Walk(func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes in the scene.
func (s *Scene) Count() int {
	count := 0
	s.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}
