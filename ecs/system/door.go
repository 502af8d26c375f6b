package system

import (
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// DoorSystem notifies doors when the player enters or leaves their zone
// and writes the door motion back to the Transform.
type DoorSystem struct{}

func NewDoorSystem() *DoorSystem {
	return &DoorSystem{}
}

func (s *DoorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	playerPos, hasPlayer := common.Vec3{}, false
	if p, ok := playerEntity(w); ok {
		playerPos, hasPlayer = worldPosition(w, p)
	}

	ecs.ForEach3(w, component.SlidingDoorComponent.Kind(), component.DoorZoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sd *component.SlidingDoor, zone *component.DoorZone, t *component.Transform) {
		d := sd.Door
		if d == nil {
			return
		}
		if !sd.Bound {
			bindZone(zone, t)
			if c := conversationCounter(w); c != nil && !sd.Ungated {
				d.Gate = c
			}
			if n, ok := textByName(w, sd.LockedLabel); ok {
				d.Locked = n
			}
			if a, ok := audioFor(w, e); ok {
				d.Sound = a
			}
			sd.Bound = true
		}

		switch entered, exited := zoneEdge(zone, playerPos, hasPlayer); {
		case entered:
			local := common.ToLocal(zone.Center, zone.Yaw, playerPos)
			d.NotifyPlayerEnter(&local)
			pushDoorEvent(w, e, d.IsOpen())
		case exited:
			d.NotifyPlayerExit()
		}

		d.Update(common.DT)
		t.Position = d.Position()
	})

	ecs.ForEach3(w, component.RotatingDoorComponent.Kind(), component.DoorZoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rd *component.RotatingDoor, zone *component.DoorZone, t *component.Transform) {
		d := rd.Door
		if d == nil {
			return
		}
		if !rd.Bound {
			bindZone(zone, t)
			if c := conversationCounter(w); c != nil && !rd.Ungated {
				d.Gate = c
			}
			if n, ok := textByName(w, rd.LockedLabel); ok {
				d.Locked = n
			}
			if a, ok := audioFor(w, e); ok {
				d.Sound = a
			}
			rd.Bound = true
		}

		if entered, _ := zoneEdge(zone, playerPos, hasPlayer); entered {
			d.NotifyPlayerEnter()
			pushDoorEvent(w, e, d.IsOpen())
		}

		d.Update(common.DT)
		t.Yaw = d.Yaw()
	})
}

func bindZone(zone *component.DoorZone, t *component.Transform) {
	zone.Center = common.FromLocal(t.World, t.WorldYaw, zone.Offset)
	zone.Yaw = t.WorldYaw
}

// zoneEdge reports the tick the player crossed into or out of the zone.
// Height is ignored.
func zoneEdge(zone *component.DoorZone, p common.Vec3, hasPlayer bool) (entered, exited bool) {
	inside := false
	if hasPlayer {
		d := p.Sub(zone.Center)
		d.Y = 0
		inside = d.Len() <= zone.Radius
	}
	entered = inside && !zone.Inside
	exited = !inside && zone.Inside
	zone.Inside = inside
	return entered, exited
}

func pushDoorEvent(w *ecs.World, e ecs.Entity, opened bool) {
	typ := ecs.EventDoorLocked
	if opened {
		typ = ecs.EventDoorOpened
	}
	w.Events().Push(ecs.Event{Type: typ, Entity: e})
}
