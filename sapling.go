package sapling

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node tint.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black, the default clear color for scaled presents.
var ColorBlack = Color{0, 0, 0, 1}

// RGB255 builds an opaque Color from 0-255 channel values.
func RGB255(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// Mul returns the component-wise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// WhitePixel is a 1x1 white image used as the source texture for untextured
// triangles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// NodeType distinguishes update and render behavior for a Node.
type NodeType uint8

const (
	NodeTypeObject   NodeType = iota // generic game object; may carry a mesh
	NodeTypeCamera                   // perspective camera
	NodeTypeMaterial                 // shader/material binding shared by its children
	NodeTypeSkybox                   // background content attached to the scene tree
	NodeTypeLight                    // point light
)

var nodeTypeNames = [...]string{
	NodeTypeObject:   "object",
	NodeTypeCamera:   "camera",
	NodeTypeMaterial: "material",
	NodeTypeSkybox:   "skybox",
	NodeTypeLight:    "light",
}

// String returns the lower-case name of the node type.
func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "unknown"
}

// EventType identifies a kind of scene lifecycle event.
type EventType uint8

const (
	EventInstantiate   EventType = iota // a node was added to the root list
	EventDestroy                        // a node was removed from the root list
	EventCameraChanged                  // the resolved main camera changed
)

// SceneEvent carries lifecycle data for an EventSink.
type SceneEvent struct {
	Type     EventType
	NodeID   uint32
	NodeType NodeType
	Name     string
	Tag      string
}

// EventSink is the interface for optional ECS integration.
// When set on a Scene, lifecycle events are forwarded to it.
type EventSink interface {
	EmitEvent(event SceneEvent)
}
