package sapling

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Target is a GPU-side render resource owned by the Engine for the length of
// one Render call.
type Target interface {
	Size() (w, h int)
	Release()
}

// Device is the graphics backend. The Engine decides when targets are
// created, bound and released; the Device only carries the calls out.
type Device interface {
	// SetVSync applies the vertical-sync policy for presents.
	SetVSync(enabled bool)
	// Viewport restricts drawing to the w×h rectangle at the origin of the
	// bound target.
	Viewport(w, h int)
	// NewColorTarget allocates an offscreen color buffer.
	NewColorTarget(w, h int) Target
	// NewDepthStencilTarget allocates a depth/stencil buffer.
	NewDepthStencilTarget(w, h int) Target
	// BindTarget makes color/depth the active render target. Passing nil
	// for both restores the surface's default target.
	BindTarget(color, depth Target)
	// Clear fills the viewport with c and resets depth.
	Clear(c Color)
	// Submit queues a triangle against the bound depth buffer.
	Submit(tri Triangle)
	// Flush resolves queued triangles into the bound color buffer.
	Flush()
	// Blit resamples the srcW×srcH corner of src into the dstW×dstH
	// viewport of the bound target.
	Blit(src Target, srcW, srcH, dstW, dstH int)
	// Canvas returns the viewport of the bound color buffer for direct
	// drawing, or nil when there is nothing to draw into.
	Canvas() *ebiten.Image
}

// Triangle is one screen-space triangle ready for submission. Depth is the
// mean normalized device depth; larger is farther.
type Triangle struct {
	Vertices [3]ebiten.Vertex
	Depth    float64
}
