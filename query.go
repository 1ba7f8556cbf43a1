package sapling

import (
	"github.com/pkg/errors"
)

// QueryMode selects the predicate a Query applies to each node.
type QueryMode uint8

const (
	QueryByType       QueryMode = iota // node.Type equals Query.Type
	QueryByName                        // object node whose Name equals Query.Value
	QueryByTag                         // object node whose Tag equals Query.Value
	QueryActiveCamera                  // first camera node; single-result only
	QueryWhere                         // custom predicate in Query.Match
)

// Query describes a scene search. Build one with ByType, ByName, ByTag,
// ActiveCamera or Where; a hand-built Query that lacks the value its mode
// compares against is rejected with ErrMissingQueryArgument.
type Query struct {
	Mode  QueryMode
	Type  NodeType
	Value string
	Match func(*Node) bool

	hasType bool
}

// ByType matches nodes of type t.
func ByType(t NodeType) Query { return Query{Mode: QueryByType, Type: t, hasType: true} }

// ByName matches object nodes named name.
func ByName(name string) Query { return Query{Mode: QueryByName, Value: name} }

// ByTag matches object nodes tagged tag.
func ByTag(tag string) Query { return Query{Mode: QueryByTag, Value: tag} }

// ActiveCamera matches camera nodes. Only valid with Find.
func ActiveCamera() Query { return Query{Mode: QueryActiveCamera} }

// Where matches nodes for which fn returns true.
func Where(fn func(*Node) bool) Query { return Query{Mode: QueryWhere, Match: fn} }

// predicate validates q and returns the per-node test.
func (q Query) predicate(multi bool) (func(*Node) bool, error) {
	switch q.Mode {
	case QueryByType:
		if !q.hasType {
			return nil, errors.Wrap(ErrMissingQueryArgument, "by type")
		}
		return func(n *Node) bool { return n.Type == q.Type }, nil
	case QueryByName:
		if q.Value == "" {
			return nil, errors.Wrap(ErrMissingQueryArgument, "by name")
		}
		return func(n *Node) bool { return n.Type == NodeTypeObject && n.Name == q.Value }, nil
	case QueryByTag:
		if q.Value == "" {
			return nil, errors.Wrap(ErrMissingQueryArgument, "by tag")
		}
		return func(n *Node) bool { return n.Type == NodeTypeObject && n.Tag == q.Value }, nil
	case QueryActiveCamera:
		if multi {
			return nil, errors.Wrap(ErrInvalidQueryMode, "active camera is single-result only")
		}
		return func(n *Node) bool { return n.Type == NodeTypeCamera }, nil
	case QueryWhere:
		if q.Match == nil {
			return nil, errors.Wrap(ErrMissingQueryArgument, "where")
		}
		return q.Match, nil
	default:
		return nil, errors.Wrapf(ErrInvalidQueryMode, "mode %d", q.Mode)
	}
}

// walk visits nodes depth-first, pre-order: each node is tested before its
// children, and a node's whole subtree is visited before its next sibling.
// Disposed nodes are skipped. fn returns false to stop; walk then reports
// false all the way up.
func walk(nodes []*Node, fn func(*Node) bool) bool {
	for _, n := range nodes {
		if n.disposed {
			continue
		}
		if !fn(n) {
			return false
		}
		if len(n.children) > 0 && !walk(n.children, fn) {
			return false
		}
	}
	return true
}

// Walk visits every node in the scene in pre-order until fn returns false.
func (s *Scene) Walk(fn func(*Node) bool) {
	walk(s.roots, fn)
}

// Find returns the first node matching q in traversal order and stops
// searching as soon as it is found. A nil node with a nil error means no
// match.
func (s *Scene) Find(q Query) (*Node, error) {
	match, err := q.predicate(false)
	if err != nil {
		return nil, err
	}
	var found *Node
	walk(s.roots, func(n *Node) bool {
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found, nil
}

// FindAll returns every node matching q in traversal order.
func (s *Scene) FindAll(q Query) ([]*Node, error) {
	match, err := q.predicate(true)
	if err != nil {
		return nil, err
	}
	var found []*Node
	walk(s.roots, func(n *Node) bool {
		if match(n) {
			found = append(found, n)
		}
		return true
	})
	return found, nil
}

// --- Convenience lookups ---
//
// These panic on a malformed query (empty name or tag), which is always a
// bug at the call site. Use Find/FindAll to receive the error instead.

// NodeOfType returns the first node of type t, or nil.
func (s *Scene) NodeOfType(t NodeType) *Node {
	return mustFind(s.Find(ByType(t)))
}

// NodesOfType returns every node of type t.
func (s *Scene) NodesOfType(t NodeType) []*Node {
	return mustFindAll(s.FindAll(ByType(t)))
}

// NodeByName returns the first object node named name, or nil.
func (s *Scene) NodeByName(name string) *Node {
	return mustFind(s.Find(ByName(name)))
}

// NodeByTag returns the first object node tagged tag, or nil.
func (s *Scene) NodeByTag(tag string) *Node {
	return mustFind(s.Find(ByTag(tag)))
}

// NodesByName returns every object node named name.
func (s *Scene) NodesByName(name string) []*Node {
	return mustFindAll(s.FindAll(ByName(name)))
}

// NodesByTag returns every object node tagged tag.
func (s *Scene) NodesByTag(tag string) []*Node {
	return mustFindAll(s.FindAll(ByTag(tag)))
}

func mustFind(n *Node, err error) *Node {
	if err != nil {
		panic(err)
	}
	return n
}

func mustFindAll(ns []*Node, err error) []*Node {
	if err != nil {
		panic(err)
	}
	return ns
}
