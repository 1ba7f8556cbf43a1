package sapling

import (
	"cmp"
	"image"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultTriangleCap = 1024
	maxBatchVertices   = 65535 - 2 // uint16 indices
)

// colorTarget is an offscreen ebiten image.
type colorTarget struct {
	img *ebiten.Image
}

func (t *colorTarget) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *colorTarget) Release() {
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

// depthTarget resolves visibility by sorting submitted triangles far to near
// before drawing them; Ebitengine exposes no hardware depth buffer.
type depthTarget struct {
	w, h int
	tris []Triangle
}

func (t *depthTarget) Size() (int, int) { return t.w, t.h }
func (t *depthTarget) Release()         { t.tris = nil }

// EbitenDevice implements Device on top of Ebitengine. The default target is
// the screen image handed to Game.Draw; call SetScreen before each Render.
type EbitenDevice struct {
	screen      *ebiten.Image
	screenDepth depthTarget

	color *colorTarget
	depth *depthTarget

	viewW, viewH int
	vsync        bool
	vsyncSet     bool

	// reused batch buffers
	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenDevice creates a device with no screen bound yet.
func NewEbitenDevice() *EbitenDevice {
	return &EbitenDevice{
		screenDepth: depthTarget{tris: make([]Triangle, 0, defaultTriangleCap)},
	}
}

// SetScreen sets the default render target for the coming frame.
func (d *EbitenDevice) SetScreen(screen *ebiten.Image) {
	d.screen = screen
	if screen != nil {
		b := screen.Bounds()
		d.screenDepth.w, d.screenDepth.h = b.Dx(), b.Dy()
	}
}

func (d *EbitenDevice) SetVSync(enabled bool) {
	if d.vsyncSet && d.vsync == enabled {
		return
	}
	ebiten.SetVsyncEnabled(enabled)
	d.vsync = enabled
	d.vsyncSet = true
}

func (d *EbitenDevice) Viewport(w, h int) {
	d.viewW, d.viewH = w, h
}

func (d *EbitenDevice) NewColorTarget(w, h int) Target {
	return &colorTarget{img: ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)}
}

func (d *EbitenDevice) NewDepthStencilTarget(w, h int) Target {
	return &depthTarget{w: w, h: h, tris: make([]Triangle, 0, defaultTriangleCap)}
}

func (d *EbitenDevice) BindTarget(color, depth Target) {
	d.Flush()
	d.color, d.depth = nil, nil
	if color != nil {
		d.color = color.(*colorTarget)
	}
	if depth != nil {
		d.depth = depth.(*depthTarget)
	}
}

func (d *EbitenDevice) Clear(c Color) {
	q := d.queue()
	*q = (*q)[:0]
	if canvas := d.Canvas(); canvas != nil {
		canvas.Fill(c.toRGBA())
	}
}

func (d *EbitenDevice) Submit(tri Triangle) {
	q := d.queue()
	*q = append(*q, tri)
}

// Flush draws queued triangles back to front, batching up to the uint16
// index limit per DrawTriangles call.
func (d *EbitenDevice) Flush() {
	q := d.queue()
	tris := *q
	*q = tris[:0]
	canvas := d.Canvas()
	if len(tris) == 0 || canvas == nil {
		return
	}
	sortBackToFront(tris)
	var op ebiten.DrawTrianglesOptions
	d.batch(tris, func(verts []ebiten.Vertex, inds []uint16) {
		canvas.DrawTriangles(verts, inds, WhitePixel, &op)
	})
}

// sortBackToFront orders tris by descending depth. Equal depths keep their
// submission order.
func sortBackToFront(tris []Triangle) {
	slices.SortStableFunc(tris, func(a, b Triangle) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
}

// batch packs tris into vertex/index buffers of at most maxBatchVertices
// vertices and hands each full buffer to draw. The buffers are reused; draw
// must not keep them.
func (d *EbitenDevice) batch(tris []Triangle, draw func([]ebiten.Vertex, []uint16)) {
	d.verts, d.inds = d.verts[:0], d.inds[:0]
	for i := range tris {
		if len(d.verts)+3 > maxBatchVertices {
			draw(d.verts, d.inds)
			d.verts, d.inds = d.verts[:0], d.inds[:0]
		}
		base := uint16(len(d.verts))
		d.verts = append(d.verts, tris[i].Vertices[:]...)
		d.inds = append(d.inds, base, base+1, base+2)
	}
	if len(d.verts) > 0 {
		draw(d.verts, d.inds)
	}
}

func (d *EbitenDevice) Blit(src Target, srcW, srcH, dstW, dstH int) {
	canvas := d.Canvas()
	ct, ok := src.(*colorTarget)
	if canvas == nil || !ok || ct.img == nil || srcW <= 0 || srcH <= 0 {
		return
	}
	sub := ct.img.SubImage(image.Rect(0, 0, srcW, srcH)).(*ebiten.Image)
	op := ebiten.DrawImageOptions{GeoM: blitGeoM(srcW, srcH, dstW, dstH)}
	op.Filter = ebiten.FilterNearest
	canvas.DrawImage(sub, &op)
}

// blitGeoM stretches a srcW x srcH image over a dstW x dstH area.
func blitGeoM(srcW, srcH, dstW, dstH int) ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	return g
}

func (d *EbitenDevice) Canvas() *ebiten.Image {
	img := d.screen
	if d.color != nil {
		img = d.color.img
	}
	if img == nil {
		return nil
	}
	if d.viewW <= 0 || d.viewH <= 0 {
		return img
	}
	r := img.Bounds().Intersect(image.Rect(0, 0, d.viewW, d.viewH))
	return img.SubImage(r).(*ebiten.Image)
}

func (d *EbitenDevice) queue() *[]Triangle {
	if d.depth != nil {
		return &d.depth.tris
	}
	return &d.screenDepth.tris
}
