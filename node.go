package sapling

import (
	"github.com/go-gl/mathgl/mgl64"
)

// --- ID counter ---

// nodeIDCounter is a plain counter (sapling is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path; fields that do
// not apply to a node's Type are ignored.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Tag  string
	Type NodeType

	// Hierarchy. Parent is a lookup-only back reference; a node is owned by
	// the parent whose children slice holds it.
	Parent   *Node
	children []*Node

	// Transform (local)
	Transform Transform

	// Computed, refreshed by updateWorldTransform.
	worldMatrix mgl64.Mat4

	Visible bool

	// Renderable fields
	Mesh  *Mesh
	Color Color

	// Camera fields (NodeTypeCamera)
	FOV       float64 // vertical field of view in degrees
	NearPlane float64
	FarPlane  float64
	view      mgl64.Mat4

	// Light fields (NodeTypeLight)
	Intensity float64

	// Metadata
	UserData any

	// Per-node callbacks (nil by default; zero cost when unused).
	// OnRender replaces the default mesh draw when set.
	OnUpdate func(n *Node, dt float64)
	OnRender func(n *Node, ctx *DrawContext)

	disposed bool
}

// Camera defaults, matching a typical 3D editor camera.
const (
	DefaultFOV       = 45.0
	DefaultNearPlane = 0.1
	DefaultFarPlane  = 100.0
)

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Transform = NewTransform()
	n.worldMatrix = mgl64.Ident4()
	n.view = mgl64.Ident4()
	n.Color = ColorWhite
	n.Visible = true
}

// NewObject creates a generic object node with no visual representation.
func NewObject(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeObject}
	nodeDefaults(n)
	return n
}

// NewMeshObject creates an object node that draws mesh.
func NewMeshObject(name string, mesh *Mesh) *Node {
	n := &Node{Name: name, Type: NodeTypeObject, Mesh: mesh}
	nodeDefaults(n)
	return n
}

// NewCamera creates a perspective camera node with default FOV and clip planes.
func NewCamera(name string) *Node {
	n := &Node{
		Name:      name,
		Type:      NodeTypeCamera,
		FOV:       DefaultFOV,
		NearPlane: DefaultNearPlane,
		FarPlane:  DefaultFarPlane,
	}
	nodeDefaults(n)
	return n
}

// NewMaterial creates a material-binding node. Its children are drawn with
// the binding's Color multiplied into their own.
func NewMaterial(name string, tint Color) *Node {
	n := &Node{Name: name, Type: NodeTypeMaterial}
	nodeDefaults(n)
	n.Color = tint
	return n
}

// NewSkyboxNode creates a skybox node. Its OnRender hook is expected to draw
// background content; without one it renders nothing.
func NewSkyboxNode(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeSkybox}
	nodeDefaults(n)
	return n
}

// NewLight creates a point light node with unit intensity.
func NewLight(name string, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeLight, Intensity: 1}
	nodeDefaults(n)
	n.Color = c
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("sapling: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("sapling: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	child.Transform.dirty = true
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("sapling: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("sapling: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("sapling: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.Transform.dirty = true
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("sapling: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	child.Transform.dirty = true
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("sapling: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	child.Transform.dirty = true
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for i, child := range n.children {
		child.Parent = nil
		child.Transform.dirty = true
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// SetChildIndex moves child to index among its siblings. Sibling order is
// traversal order, so this changes which node a single-result query finds
// first.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("sapling: child's parent is not this node")
	}
	nc := len(n.children)
	if index < 0 || index >= nc {
		panic("sapling: child index out of range")
	}
	oldIndex := -1
	for i, c := range n.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Per-frame hooks ---

// Update runs OnUpdate, refreshes a camera's view matrix, then updates the
// children in order.
func (n *Node) Update(dt float64) {
	if n.disposed {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(n, dt)
	}
	if n.Type == NodeTypeCamera {
		n.refreshView()
	}
	for _, child := range n.children {
		child.Update(dt)
	}
}

// Render draws this node (OnRender if set, otherwise its Mesh) and then its
// children. Invisible nodes skip their whole subtree. A material node tints
// everything beneath it.
func (n *Node) Render(ctx *DrawContext) {
	if n.disposed || !n.Visible {
		return
	}
	ctx.nodes++
	if n.OnRender != nil {
		n.OnRender(n, ctx)
	} else if n.Mesh != nil {
		n.Mesh.draw(ctx, n.worldMatrix, ctx.tint(n.Color))
	}
	if len(n.children) == 0 {
		return
	}
	if n.Type == NodeTypeMaterial {
		prev := ctx.pushTint(n.Color)
		defer ctx.popTint(prev)
	}
	for _, child := range n.children {
		child.Render(ctx)
	}
}

// WorldMatrix returns the model-to-world matrix computed during the last
// Update.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	return n.worldMatrix
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.worldMatrix.Col(3).Vec3()
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Scene.Destroy does not call
// Dispose; use it for explicit teardown of a whole subtree.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Mesh = nil
	n.UserData = nil
	n.OnUpdate = nil
	n.OnRender = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// updateWorldTransform recomputes a node's world matrix. parentRecomputed
// forces recomputation even when the node's own transform is clean.
func updateWorldTransform(n *Node, parent mgl64.Mat4, parentRecomputed bool) {
	recompute := n.Transform.dirty || parentRecomputed
	if recompute {
		n.worldMatrix = parent.Mul4(n.Transform.Matrix())
		n.Transform.dirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldMatrix, recompute)
	}
}
