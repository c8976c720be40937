package tree

import (
	"github.com/pkg/errors"
)

// Midpoint may be given as the distance to ReRoot to split the target's
// branch evenly. Any negative distance has the same effect.
const Midpoint = -1.0

// ErrNotFound is returned when a node to re-root at is nil, has no match by
// name or is not part of the tree being re-rooted.
var ErrNotFound = errors.New("node not found in tree")

// ReRootByName re-roots the tree at the first node, in pre-order, named
// `name`. See ReRoot.
func ReRootByName(root *Node, name string, distance float64) (*Node, error) {
	found := FindByName(root, name)
	if len(found) == 0 {
		return root, errors.Wrapf(ErrNotFound, "no node named %q", name)
	}
	return ReRoot(root, found[0], distance)
}

// ReRoot rearranges the tree rooted at `root` so that `target` is one side
// of a new bifurcating root, and returns that root. The tree is changed in
// place: apart from the new root, the nodes of the result are the nodes of
// the input.
//
// The edge above target is split in two. With a negative distance (see
// Midpoint) both halves get half of target's length; otherwise target gets
// `distance` and the other side gets what remains. All other edge lengths
// are kept, though an edge may end up stored on the other node it connects.
// An ancestor that is left with a single neighbour is dropped along with its
// name, and its two edges are merged into one. An old root with a single
// child has nothing to merge into and becomes a leaf instead.
//
// If target is the root, or one of the two children of a bifurcating root,
// the tree is returned as is.
//
// ReRoot does not read or repair Parent links. Call LinkParents on the
// result before using them again. On error, root is returned unchanged.
func ReRoot(root, target *Node, distance float64) (*Node, error) {
	if root == nil || target == nil {
		return root, errors.Wrap(ErrNotFound, "cannot re-root at a nil node")
	}
	if target == root {
		tracer().Debugf("re-root at %s: already the root", describe(target))
		return root, nil
	}
	if len(root.Children) == 2 &&
		(root.Children[0] == target || root.Children[1] == target) {
		tracer().Debugf("re-root at %s: already next to the root", describe(target))
		return root, nil
	}

	// chain is target, its parent, its grandparent and so on up to root.
	chain := pathTo(root, target)
	if chain == nil {
		return root, errors.Wrapf(ErrNotFound, "%s is not in the tree",
			describe(target))
	}
	lengths := make([]*float64, len(chain))
	for i, n := range chain {
		lengths[i] = n.Length
	}

	// Work down from the old root. Each ancestor loses the child leading to
	// target and gains, in that child's place, whatever the ancestor above
	// it turned into.
	var up *Node
	for i := len(chain) - 1; i >= 1; i-- {
		anc, below := chain[i], chain[i-1]
		at := removeChild(anc, below)
		if up != nil {
			insertChild(anc, at, up)
		}
		if i == 1 {
			break
		}
		switch len(anc.Children) {
		case 0:
			// Only a unary old root ends up here. It stays as a leaf, keeping
			// the edge it now shares with the chain node below.
			tracer().Debugf("re-root: %s becomes a leaf", describe(anc))
			anc.Length = copyLength(lengths[i-1])
			up = anc
		case 1:
			lone := anc.Children[0]
			tracer().Debugf("re-root: eliding %s into %s",
				describe(anc), describe(lone))
			lone.Length = addLengths(lone.Length, lengths[i-1])
			anc.Children = nil
			up = lone
		default:
			tracer().Debugf("re-root: %s keeps %d children",
				describe(anc), len(anc.Children))
			anc.Length = copyLength(lengths[i-1])
			up = anc
		}
	}

	parent := chain[1]
	target.Length, parent.Length = splitLength(lengths[0], distance)
	return &Node{Children: []*Node{target, parent}}, nil
}

// pathTo returns the nodes from target up to n, or nil if target is not
// below n.
func pathTo(n, target *Node) []*Node {
	if n == target {
		return []*Node{n}
	}
	for _, child := range n.Children {
		if path := pathTo(child, target); path != nil {
			return append(path, n)
		}
	}
	return nil
}

func removeChild(n, child *Node) int {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i:i], n.Children[i+1:]...)
			return i
		}
	}
	panic("BUG: re-root chain is not a path through the tree")
}

func insertChild(n *Node, at int, child *Node) {
	n.Children = append(n.Children, nil)
	copy(n.Children[at+1:], n.Children[at:])
	n.Children[at] = child
}

// splitLength divides the branch length l between the re-root target and
// its old parent.
func splitLength(l *float64, distance float64) (*float64, *float64) {
	if distance < 0 {
		if l == nil {
			return nil, nil
		}
		half := *l / 2
		return Length(half), Length(half)
	}
	if l == nil {
		return Length(distance), nil
	}
	return Length(distance), Length(*l - distance)
}

func addLengths(a, b *float64) *float64 {
	switch {
	case b == nil:
		return a
	case a == nil:
		return copyLength(b)
	}
	return Length(*a + *b)
}

func copyLength(l *float64) *float64 {
	if l == nil {
		return nil
	}
	return Length(*l)
}

func describe(n *Node) string {
	if n.Name == nil {
		return "<unnamed>"
	}
	return *n.Name
}
