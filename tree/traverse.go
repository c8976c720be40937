package tree

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// PreOrder calls visit for n and then for each of its descendants, parents
// before children and children in order. The children of a collapsed node
// are not visited (the collapsed node itself is).
//
// The walk uses an explicit stack, so deep trees do not grow the goroutine
// stack.
func PreOrder(n *Node, visit func(*Node)) {
	walk(n, visit, false)
}

// PreOrderAll is like PreOrder, but also descends below collapsed nodes.
func PreOrderAll(n *Node, visit func(*Node)) {
	walk(n, visit, true)
}

func walk(n *Node, visit func(*Node), all bool) {
	if n == nil {
		return
	}
	stack := arraystack.New()
	stack.Push(n)
	for !stack.Empty() {
		v, _ := stack.Pop()
		node := v.(*Node)
		visit(node)
		if node.Collapsed && !all {
			continue
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack.Push(node.Children[i])
		}
	}
}

// FindByName returns all nodes in the subtree rooted at n whose name is
// exactly `name`, in pre-order. Unnamed nodes never match. The result is
// empty when nothing matches.
func FindByName(n *Node, name string) []*Node {
	found := make([]*Node, 0)
	PreOrderAll(n, func(node *Node) {
		if node.Name != nil && *node.Name == name {
			found = append(found, node)
		}
	})
	return found
}

// LinkParents sets the Parent field of every node below n. The Parent of n
// itself is left alone, so LinkParents may be called on any subtree.
//
// Call it after building or parsing a tree, and again after every ReRoot.
func LinkParents(n *Node) {
	PreOrderAll(n, func(node *Node) {
		for _, child := range node.Children {
			child.Parent = node
		}
	})
}

// Root follows Parent links from n until it reaches a node without a parent.
// The result is only meaningful if LinkParents has been called since the
// tree was last changed. Root(nil) is nil.
func Root(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}
