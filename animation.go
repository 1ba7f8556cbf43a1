package sapling

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenColor, TweenFOV) and either call Update(dt) each frame or hand it to
// Engine.AddTween. The group auto-applies values and marks the node's
// transform dirty. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target
// fields, and marks the node dirty. If the target node has been disposed,
// Done is set to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.Transform.MarkDirty()
	}
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenPosition animates node.Transform.Position to the given target over
// duration seconds.
func TweenPosition(node *Node, to [3]float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	for i := 0; i < 3; i++ {
		g.add(&node.Transform.Position[i], to[i], duration, fn)
	}
	return g
}

// TweenScale animates node.Transform.Scale to the given target.
func TweenScale(node *Node, to [3]float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	for i := 0; i < 3; i++ {
		g.add(&node.Transform.Scale[i], to[i], duration, fn)
	}
	return g
}

// TweenColor animates all four components of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Color.R, to.R, duration, fn)
	g.add(&node.Color.G, to.G, duration, fn)
	g.add(&node.Color.B, to.B, duration, fn)
	g.add(&node.Color.A, to.A, duration, fn)
	return g
}

// TweenFOV animates a camera's field of view (degrees). The projection picks
// up the new value on the next Engine.Update.
func TweenFOV(camera *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: camera}
	g.add(&camera.FOV, to, duration, fn)
	return g
}
