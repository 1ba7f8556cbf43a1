// Package sapling is a small retained-mode 3D scene core for [Ebitengine].
//
// Sapling provides a scene graph of typed nodes with quaternion transforms,
// a query layer over that graph, and an [Engine] that drives the per-frame
// Update and Render of a scene onto a window surface, including rendering at
// a reduced resolution and frame pacing without vsync.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and drives
// an engine from Ebitengine's game loop:
//
//	engine := sapling.NewEngine(sapling.DefaultConfig(), sapling.NewEbitenDevice())
//	cam := engine.NewCamera("main")
//	cam.Transform.SetPosition(mgl64.Vec3{0, 2, -6})
//	cam.Transform.LookAt(mgl64.Vec3{})
//	engine.Scene.Instantiate(cam)
//	engine.Scene.Instantiate(sapling.NewMeshObject("cube", sapling.NewCube(1, sapling.ColorWhite)))
//	if err := sapling.Run(engine); err != nil {
//		os.Exit(1)
//	}
//
// For full control, register your own [Surface] and [Device] and call
// [Engine.Update] and [Engine.Render] yourself. [ScriptedSurface] is a
// headless surface for automated runs.
//
// # Scene graph
//
// Every element is a [Node]. A node owns its children; [Node.Parent] is a
// lookup-only back reference. Only root nodes are registered with the
// [Scene] through [Scene.Instantiate]; descendants are reached by walking
// their ancestors. [Scene.Destroy] removes a root and nothing else.
//
// Create nodes with typed constructors: [NewObject], [NewMeshObject],
// [NewCamera], [NewMaterial], [NewSkyboxNode] and [NewLight].
//
// # Transforms
//
// [Transform] keeps a unit quaternion and its Euler decomposition (degrees,
// each axis in [-180, 180)) in sync, along with the derived front, up and
// right vectors. [Transform.Move] translates in the local basis;
// [Transform.LookAt] and [Transform.SLerp] turn the front vector toward a
// point.
//
// # Queries
//
// [Scene.Find] and [Scene.FindAll] search the forest depth-first in
// pre-order with a typed [Query]. Find stops at the first match. A malformed
// query returns [ErrMissingQueryArgument] or [ErrInvalidQueryMode] rather
// than an empty result.
//
// # Frames
//
// [Engine.Update] and [Engine.Render] fail with [ErrMissingWindow] or
// [ErrMissingCamera] when there is nothing to draw to or from. Offscreen
// targets for scaled rendering are owned by the engine and live for one
// Render call.
//
// Tweens (via [gween]) can be scheduled with [Engine.AddTween]. Scene
// lifecycle events can be forwarded to a [Donburi] world with the sapling/ecs
// adapter.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package sapling
