package ecs

import (
	"slices"
	"testing"

	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

// piece is one entity of a small furnished room.
type piece struct {
	name         string
	talk         bool
	interactable bool
	seat         bool
}

var roomPieces = []piece{
	{name: "Marta", talk: true, interactable: true},
	{name: "Oskar", talk: true, interactable: true},
	{name: "Chair", interactable: true, seat: true},
	{name: "Wall"},
	{name: "Radio", talk: true},
}

func furnish(t *testing.T, w *World) map[string]Entity {
	t.Helper()
	out := make(map[string]Entity, len(roomPieces))
	for i, p := range roomPieces {
		e := CreateEntity(w)
		out[p.name] = e
		add := func(err error) {
			if err != nil {
				t.Fatalf("%s: %v", p.name, err)
			}
		}
		add(Add(w, e, component.NameComponent.Kind(), &component.Name{Value: p.name}))
		add(Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: common.Vec3{X: float64(i)}}))
		if p.talk {
			add(Add(w, e, component.TalkComponent.Kind(), &component.Talk{ID: p.name, Counts: true}))
		}
		if p.interactable {
			add(Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{Prompt: "Press {key} to talk"}))
		}
		if p.seat {
			add(Add(w, e, component.SeatComponent.Kind(), &component.Seat{Offset: common.Vec3{Y: 0.45}}))
		}
	}
	return out
}

func names(w *World, ents []Entity) []string {
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		if n, ok := Get(w, e, component.NameComponent.Kind()); ok {
			out = append(out, n.Value)
		}
	}
	slices.Sort(out)
	return out
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name    string
		destroy []string
		alive   int
	}{
		{"nothing_destroyed", nil, 5},
		{"one_npc_leaves", []string{"Oskar"}, 4},
		{"room_emptied", []string{"Marta", "Oskar", "Chair", "Wall", "Radio"}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			room := furnish(t, w)
			for _, n := range c.destroy {
				if !DestroyEntity(w, room[n]) {
					t.Fatalf("DestroyEntity(%s) = false for a live entity", n)
				}
				if IsAlive(w, room[n]) {
					t.Fatalf("%s alive after destroy", n)
				}
				if Has(w, room[n], component.TransformComponent.Kind()) {
					t.Fatalf("%s kept its transform", n)
				}
			}
			if got := len(Entities(w)); got != c.alive || Count(w) != c.alive {
				t.Fatalf("alive = %d/%d, want %d", got, Count(w), c.alive)
			}
		})
	}
}

func TestComponentAddGetRemove(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	cases := []struct {
		name   string
		add    func() error
		check  func(t *testing.T)
		remove func() bool
	}{
		{
			name: "transform",
			add: func() error {
				return Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: common.Vec3{Z: -4}, Yaw: 90})
			},
			check: func(t *testing.T) {
				tr, ok := Get(w, e, component.TransformComponent.Kind())
				if !ok || tr.Position.Z != -4 || tr.Yaw != 90 {
					t.Fatalf("transform = %+v ok=%v", tr, ok)
				}
			},
			remove: func() bool { return Remove(w, e, component.TransformComponent.Kind()) },
		},
		{
			name: "talk_replaced",
			add: func() error {
				if err := Add(w, e, component.TalkComponent.Kind(), &component.Talk{ID: "lena"}); err != nil {
					return err
				}
				return Add(w, e, component.TalkComponent.Kind(), &component.Talk{ID: "marta", Paragraph: "NPC: Hi."})
			},
			check: func(t *testing.T) {
				talk, ok := Get(w, e, component.TalkComponent.Kind())
				if !ok || talk.ID != "marta" || talk.Paragraph != "NPC: Hi." {
					t.Fatalf("talk = %+v ok=%v", talk, ok)
				}
			},
			remove: func() bool { return Remove(w, e, component.TalkComponent.Kind()) },
		},
		{
			name: "interactable",
			add: func() error {
				return Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{Prompt: "Press {key} to sit"})
			},
			check: func(t *testing.T) {
				if !Has(w, e, component.InteractableComponent.Kind()) {
					t.Fatalf("interactable missing")
				}
				if Has(w, e, component.SeatComponent.Kind()) {
					t.Fatalf("seat present without being added")
				}
			},
			remove: func() bool { return Remove(w, e, component.InteractableComponent.Kind()) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.add(); err != nil {
				t.Fatalf("add: %v", err)
			}
			tc.check(t)
			if !tc.remove() {
				t.Fatalf("remove reported false")
			}
			if tc.remove() {
				t.Fatalf("second remove reported true")
			}
		})
	}
}

func TestRoomQueries(t *testing.T) {
	cases := []struct {
		name    string
		destroy string
		query   func(w *World) []Entity
		want    []string
	}{
		{
			name: "talkers",
			query: func(w *World) []Entity {
				var out []Entity
				ForEach(w, component.TalkComponent.Kind(), func(e Entity, _ *component.Talk) { out = append(out, e) })
				return out
			},
			want: []string{"Marta", "Oskar", "Radio"},
		},
		{
			name: "interactable_talkers",
			query: func(w *World) []Entity {
				var out []Entity
				ForEach2(w, component.TalkComponent.Kind(), component.InteractableComponent.Kind(),
					func(e Entity, _ *component.Talk, _ *component.Interactable) { out = append(out, e) })
				return out
			},
			want: []string{"Marta", "Oskar"},
		},
		{
			name:    "placed_talkers_skip_destroyed",
			destroy: "Marta",
			query: func(w *World) []Entity {
				var out []Entity
				ForEach3(w, component.TransformComponent.Kind(), component.TalkComponent.Kind(), component.InteractableComponent.Kind(),
					func(e Entity, _ *component.Transform, _ *component.Talk, _ *component.Interactable) { out = append(out, e) })
				return out
			},
			want: []string{"Oskar"},
		},
		{
			name: "seats",
			query: func(w *World) []Entity {
				var out []Entity
				ForEach4(w, component.NameComponent.Kind(), component.TransformComponent.Kind(), component.InteractableComponent.Kind(), component.SeatComponent.Kind(),
					func(e Entity, _ *component.Name, _ *component.Transform, _ *component.Interactable, _ *component.Seat) {
						out = append(out, e)
					})
				return out
			},
			want: []string{"Chair"},
		},
		{
			name: "talking_seat_is_nobody",
			query: func(w *World) []Entity {
				var out []Entity
				ForEach3(w, component.NameComponent.Kind(), component.TalkComponent.Kind(), component.SeatComponent.Kind(),
					func(e Entity, _ *component.Name, _ *component.Talk, _ *component.Seat) { out = append(out, e) })
				return out
			},
			want: []string{},
		},
		{
			name: "unused_table",
			query: func(w *World) []Entity {
				var out []Entity
				ForEach2(w, component.TalkComponent.Kind(), component.DoorZoneComponent.Kind(),
					func(e Entity, _ *component.Talk, _ *component.DoorZone) { out = append(out, e) })
				return out
			},
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			room := furnish(t, w)
			if tc.destroy != "" {
				DestroyEntity(w, room[tc.destroy])
			}
			if got := names(w, tc.query(w)); !slices.Equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[string]()

	old := CreateEntity(w)
	if err := Add(w, old, k, stringPtr("old")); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)
	reused := CreateEntity(w)

	if reused.id() != old.id() || reused == old {
		t.Fatalf("expected id reuse with new generation: old=%v reused=%v", old, reused)
	}
	if _, ok := Get(w, old, k); ok {
		t.Fatalf("stale handle resolved a component")
	}
	if _, ok := Get(w, reused, k); ok {
		t.Fatalf("reused entity inherited a component")
	}
	if err := Add(w, old, k, stringPtr("x")); err != component.ErrEntityNotAlive {
		t.Fatalf("add on stale handle = %v", err)
	}
	if DestroyEntity(w, old) {
		t.Fatalf("destroying a stale handle should report false")
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	cases := []struct {
		name string
		err  error
		add  func() error
	}{
		{"nil_value", component.ErrNilComponent, func() error { return Add[int](w, e, component.NewComponentKind[int](), nil) }},
		{"zero_kind", component.ErrInvalidComponentKind, func() error { return Add(w, e, component.ComponentKind[int]{}, intPtr(1)) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.add(); err != tc.err {
				t.Fatalf("err = %v, want %v", err, tc.err)
			}
		})
	}
}

func TestForEachAllowsRemovalDuringVisit(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	for i := range 5 {
		e := CreateEntity(w)
		if err := Add(w, e, k, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}
	visited := 0
	ForEach(w, k, func(e Entity, _ *int) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 5 || Count(w) != 0 {
		t.Fatalf("visited=%d alive=%d", visited, Count(w))
	}
}

func TestFirstAndQueryOrder(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	a := CreateEntity(w)
	b := CreateEntity(w)
	c := CreateEntity(w)
	_ = Add(w, c, k, intPtr(3))
	_ = Add(w, b, k, intPtr(2))
	_ = Add(w, a, k, intPtr(1))

	if first, ok := First(w, k); !ok || first != a {
		t.Fatalf("first = %v, want %v", first, a)
	}
	got := Query(w, k)
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("query = %v", got)
	}
}

func TestSchedulerFlushesEvents(t *testing.T) {
	w := NewWorld()
	var seen int
	s := NewScheduler(
		systemFunc(func(w *World) { w.Events().Push(Event{Type: EventDoorOpened}) }),
		systemFunc(func(w *World) { seen += len(w.Events().Peek(EventDoorOpened)) }),
	)
	s.Update(w)
	s.Update(w)
	if seen != 2 {
		t.Fatalf("seen = %d, want 2", seen)
	}
	if len(w.Events().Drain()) != 0 {
		t.Fatalf("events survived the tick")
	}
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }
