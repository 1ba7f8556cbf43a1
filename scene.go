package sapling

// Scene is the registry of root nodes. Children are never registered on
// their own; they are reached by walking their ancestors.
//
// The main camera is cached after the first successful lookup. The cache is
// dropped by Instantiate, Destroy and InvalidateCameraCache, and when the
// cached node has been disposed. Attaching a camera under a node that is
// already registered does NOT drop it; call InvalidateCameraCache for that.
//
// A disposed root stays in the root list until it is destroyed, but queries,
// Update and Render skip it.
type Scene struct {
	roots []*Node
	sink  EventSink

	// cursor is the index eachRoot is visiting; Destroy and Clear shift it
	// back when they remove roots at or before it.
	cursor  int
	walking bool

	mainCamera *Node
	lastCamera *Node // last resolved camera, kept across invalidation
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Instantiate appends n to the root list. A node that has a parent is
// detached from it first; a node that is already a root is left in place.
// Panics if n is nil.
func (s *Scene) Instantiate(n *Node) {
	if n == nil {
		panic("sapling: cannot instantiate nil node")
	}
	if globalDebug {
		debugCheckDisposed(n, "Instantiate")
	}
	s.InvalidateCameraCache()
	if s.indexOf(n) >= 0 {
		return
	}
	n.RemoveFromParent()
	n.Transform.dirty = true
	s.roots = append(s.roots, n)
	s.emit(EventInstantiate, n)
}

// Destroy removes n from the root list by identity and reports whether it was
// there. Nodes that are only reachable as descendants are not searched for;
// destroying one is a no-op that returns false. Children of a destroyed root
// are neither destroyed nor disposed and stay attached to it.
func (s *Scene) Destroy(n *Node) bool {
	s.InvalidateCameraCache()
	i := s.indexOf(n)
	if i < 0 {
		return false
	}
	copy(s.roots[i:], s.roots[i+1:])
	s.roots[len(s.roots)-1] = nil
	s.roots = s.roots[:len(s.roots)-1]
	if s.walking && i <= s.cursor {
		s.cursor--
	}
	s.emit(EventDestroy, n)
	return true
}

// Roots returns the root list. The returned slice MUST NOT be mutated.
func (s *Scene) Roots() []*Node {
	return s.roots
}

// Len returns the number of root nodes.
func (s *Scene) Len() int {
	return len(s.roots)
}

// Clear removes every root without disposing it.
func (s *Scene) Clear() {
	for i := range s.roots {
		s.emit(EventDestroy, s.roots[i])
		s.roots[i] = nil
	}
	s.roots = s.roots[:0]
	if s.walking {
		s.cursor = -1
	}
	s.InvalidateCameraCache()
}

// InvalidateCameraCache forces the next MainCamera call to search the scene.
func (s *Scene) InvalidateCameraCache() {
	s.mainCamera = nil
}

// MainCamera returns the first camera in traversal order, or nil when the
// scene has none. The result is cached; see Scene for when the cache is
// dropped.
func (s *Scene) MainCamera() *Node {
	if s.mainCamera != nil && !s.mainCamera.disposed {
		return s.mainCamera
	}
	cam, _ := s.Find(ActiveCamera())
	if cam != nil && cam != s.lastCamera {
		s.emit(EventCameraChanged, cam)
		s.lastCamera = cam
	}
	s.mainCamera = cam
	return cam
}

// SetEventSink sets the optional ECS bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// updateWorldTransforms refreshes world matrices for every root subtree.
func (s *Scene) updateWorldTransforms() {
	for _, root := range s.roots {
		updateWorldTransform(root, identityMatrix, false)
	}
}

// eachRoot calls fn for every root in order. Roots that fn destroys are not
// visited afterwards and the roots after them are not skipped. Roots that
// fn instantiates are visited in the same pass.
func (s *Scene) eachRoot(fn func(*Node)) {
	if s.walking {
		panic("sapling: nested root iteration")
	}
	s.walking = true
	defer func() { s.walking = false }()
	for s.cursor = 0; s.cursor < len(s.roots); s.cursor++ {
		fn(s.roots[s.cursor])
	}
}

func (s *Scene) indexOf(n *Node) int {
	for i, r := range s.roots {
		if r == n {
			return i
		}
	}
	return -1
}

func (s *Scene) emit(typ EventType, n *Node) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(SceneEvent{
		Type:     typ,
		NodeID:   n.ID,
		NodeType: n.Type,
		Name:     n.Name,
		Tag:      n.Tag,
	})
}
