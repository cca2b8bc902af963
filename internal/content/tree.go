package content

import (
	"sort"
	"strings"
)

// Node is one entry of the navigation tree.
//
// Section directories without an index page get a synthesized node whose
// Route stays empty; an index page claims the node and gives it a route.
type Node struct {
	Title    string  `json:"title"`
	Route    string  `json:"route,omitempty"`
	Children []*Node `json:"children,omitempty"`

	weight int
}

// BuildTree arranges pages into a navigation tree keyed by route
// segments. Children are ordered by front matter weight (ascending,
// weighted before unweighted), then title; sections without a weight of
// their own inherit the smallest weight among their descendants.
func BuildTree(pages []*Page) *Node {
	root := &Node{Title: "Home"}

	for _, p := range pages {
		trimmed := strings.Trim(p.Route, "/")
		if trimmed == "" {
			root.Route = p.Route
			root.Title = p.Title()
			root.weight = p.Meta.Weight
			continue
		}

		node := root
		segs := strings.Split(trimmed, "/")
		for i, seg := range segs {
			child := node.child(seg)
			if child == nil {
				child = &Node{Title: fallbackTitle("/" + strings.Join(segs[:i+1], "/") + "/")}
				node.Children = append(node.Children, child)
			}
			node = child
		}
		node.Title = p.Title()
		node.Route = p.Route
		node.weight = p.Meta.Weight
	}

	root.liftWeight()
	root.sortChildren()
	return root
}

// liftWeight gives unweighted section nodes the smallest positive weight
// found among their descendants, so a section sorts where its children
// say it belongs. An explicit weight on an index page wins.
func (n *Node) liftWeight() int {
	min := 0
	for _, c := range n.Children {
		if w := c.liftWeight(); w > 0 && (min == 0 || w < min) {
			min = w
		}
	}
	if n.weight <= 0 {
		n.weight = min
	}
	return n.weight
}

// child finds a direct child whose terminal route segment matches seg.
func (n *Node) child(seg string) *Node {
	for _, c := range n.Children {
		if c.segment() == seg {
			return c
		}
	}
	return nil
}

// segment returns the terminal route segment, falling back to the
// slugified title for synthesized section nodes.
func (n *Node) segment() string {
	if n.Route != "" {
		trimmed := strings.Trim(n.Route, "/")
		if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
			return trimmed[i+1:]
		}
		return trimmed
	}
	return strings.ReplaceAll(strings.ToLower(n.Title), " ", "-")
}

func (n *Node) sortChildren() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		// Weighted entries come first, in ascending weight order.
		switch {
		case a.weight > 0 && b.weight > 0 && a.weight != b.weight:
			return a.weight < b.weight
		case a.weight > 0 && b.weight <= 0:
			return true
		case a.weight <= 0 && b.weight > 0:
			return false
		}
		return a.Title < b.Title
	})
	for _, c := range n.Children {
		c.sortChildren()
	}
}

// Walk visits the tree in preorder, root first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Ordered returns the routed nodes in navigation order; the site builder
// derives prev/next links from it.
func (n *Node) Ordered() []*Node {
	var out []*Node
	n.Walk(func(node *Node) {
		if node.Route != "" {
			out = append(out, node)
		}
	})
	return out
}
