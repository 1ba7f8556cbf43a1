package ecs

import (
	"github.com/phanxgames/sapling"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for sapling scene events.
// Subscribe to this in your ECS systems to react to instantiate, destroy and
// camera changes.
var SceneEventType = events.NewEventType[sapling.SceneEvent]()

// NodeRefData identifies the scene node an entity mirrors.
type NodeRefData struct {
	NodeID uint32
	Type   sapling.NodeType
	Name   string
	Tag    string
}

// NodeRef is attached to one entity per registered root node.
var NodeRef = donburi.NewComponentType[NodeRefData]()

// MainCamera tags the entity of the most recently resolved main camera.
var MainCamera = donburi.NewTag()

// DonburiSink is a sapling.EventSink backed by a Donburi world.
type DonburiSink struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world, entities: make(map[uint32]donburi.Entity)}
}

func (s *DonburiSink) EmitEvent(event sapling.SceneEvent) {
	switch event.Type {
	case sapling.EventInstantiate:
		s.track(event)
	case sapling.EventDestroy:
		s.untrack(event.NodeID)
	case sapling.EventCameraChanged:
		s.markCamera(event.NodeID)
	}
	SceneEventType.Publish(s.world, event)
}

// Entity returns the entity mirroring the root node with the given ID.
func (s *DonburiSink) Entity(nodeID uint32) (donburi.Entity, bool) {
	e, ok := s.entities[nodeID]
	if ok && !s.world.Valid(e) {
		delete(s.entities, nodeID)
		var none donburi.Entity
		return none, false
	}
	return e, ok
}

func (s *DonburiSink) track(event sapling.SceneEvent) {
	if _, ok := s.Entity(event.NodeID); ok {
		return
	}
	e := s.world.Create(NodeRef)
	NodeRef.SetValue(s.world.Entry(e), NodeRefData{
		NodeID: event.NodeID,
		Type:   event.NodeType,
		Name:   event.Name,
		Tag:    event.Tag,
	})
	s.entities[event.NodeID] = e
}

func (s *DonburiSink) untrack(nodeID uint32) {
	e, ok := s.Entity(nodeID)
	if !ok {
		return
	}
	s.world.Remove(e)
	delete(s.entities, nodeID)
}

// markCamera moves the MainCamera tag to the camera's entity. Cameras nested
// below a root have no entity of their own and only clear the tag.
func (s *DonburiSink) markCamera(nodeID uint32) {
	for _, e := range s.entities {
		entry := s.world.Entry(e)
		if entry.HasComponent(MainCamera) {
			entry.RemoveComponent(MainCamera)
		}
	}
	if e, ok := s.Entity(nodeID); ok {
		s.world.Entry(e).AddComponent(MainCamera)
	}
}
