package system

import (
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/dialogue"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/gate"
	"github.com/milk9111/finalroom/typewriter"
)

// DialogueSystem opens conversations from talk requests, advances them on
// the advance key and runs the NPC's script hooks along the way.
type DialogueSystem struct{}

func NewDialogueSystem() *DialogueSystem {
	return &DialogueSystem{}
}

func (s *DialogueSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	req, requested := consumeTalkRequest(w)

	uiEnt, found := ecs.First(w, component.DialogueUIComponent.Kind())
	if !found {
		return
	}
	ui, _ := ecs.Get(w, uiEnt, component.DialogueUIComponent.Kind())
	if ui.Session == nil {
		return
	}
	if !ui.Bound {
		bindDialogueUI(w, ui)
	}

	if requested && !ui.Session.IsOpen() {
		if npc, alive := entityRef(w, req.NPC); alive {
			startConversation(w, uiEnt, ui, npc)
		}
	}

	if ui.Session.IsOpen() {
		advance := ui.NextClicked
		if p, ok := playerEntity(w); ok {
			if in, ok := ecs.Get(w, p, component.InputComponent.Kind()); ok && in.AdvancePressed {
				advance = true
			}
		}
		if advance && !(requested && req.NPC == ui.Speaking) {
			ui.Session.Advance()
		}
	}
	ui.NextClicked = false

	ui.Session.Update(common.DT)
}

func consumeTalkRequest(w *ecs.World) (component.TalkRequest, bool) {
	var (
		latest component.TalkRequest
		found  bool
	)
	for _, e := range ecs.Query(w, component.TalkRequestComponent.Kind()) {
		if req, ok := ecs.Get(w, e, component.TalkRequestComponent.Kind()); ok {
			latest = *req
			found = true
		}
		ecs.DestroyEntity(w, e)
	}
	return latest, found
}

func slotFor(w *ecs.World, names component.DialogueSlotNames) dialogue.Slot {
	var slot dialogue.Slot
	if n, ok := textByName(w, names.Panel); ok {
		slot.Panel = objectNode{w: w, e: n.e}
	}
	if n, ok := textByName(w, names.Text); ok {
		slot.Text = n
	}
	if n, ok := textByName(w, names.Icon); ok {
		slot.Icon = n
	}
	return slot
}

func bindDialogueUI(w *ecs.World, ui *component.DialogueUI) {
	s := ui.Session
	s.NPC = slotFor(w, ui.NPC)
	s.Player = slotFor(w, ui.Player)
	s.Legacy = slotFor(w, ui.Legacy)
	if n, ok := FindByName(w, ui.Next); ok {
		s.Next = objectNode{w: w, e: n}
		SetActive(w, n, false)
	}
	if n, ok := textByName(w, ui.Instruction); ok {
		s.Instruction = n
		n.SetActive(false)
	}
	if mgr := musicManager(w); mgr != nil {
		s.Music = mgr
	}
	for _, panel := range []typewriter.Activatable{s.NPC.Panel, s.Player.Panel, s.Legacy.Panel} {
		if panel != nil {
			panel.SetActive(false)
		}
	}
	ui.Bound = true
}

func startConversation(w *ecs.World, uiEnt ecs.Entity, ui *component.DialogueUI, npc ecs.Entity) {
	talk, ok := ecs.Get(w, npc, component.TalkComponent.Kind())
	if !ok {
		return
	}
	s := ui.Session
	s.Name = nameOf(w, npc)

	s.Voice = nil
	if a, ok := audioFor(w, npc); ok {
		s.Voice = a
	}
	s.Animator = nil
	if talk.Driver != nil {
		if talk.Driver.Animator == nil {
			if a, ok := animatorFor(w, npc); ok {
				talk.Driver.Animator = a
			}
		}
		s.Animator = talk.Driver
	}

	host := scriptHost{w: w, npc: npc}
	controls, hasPlayer := playerControls(w)

	s.OnStart = func() {
		if talk.Counts {
			if c := conversationCounter(w); c != nil {
				c.RegisterConversation(talk.ID)
			}
		}
		if talk.Script != nil {
			talk.Script.Start(host)
		}
		w.Events().Push(ecs.Event{Type: ecs.EventConversationStarted, Entity: npc, Data: talk.ID})
	}
	s.OnLine = func(index int, line dialogue.Line) {
		if talk.Script != nil {
			talk.Script.Line(host, line.Speaker.String(), index, line.Text)
		}
	}
	s.OnEnd = func() {
		if talk.Script != nil {
			talk.Script.End(host)
		}
		if hasPlayer {
			controls.SetEnabled(true)
		}
		ui.Speaking = 0
		w.Events().Push(ecs.Event{Type: ecs.EventConversationEnded, Entity: npc, Data: talk.ID})
	}

	if hasPlayer {
		controls.SetEnabled(false)
	}
	ui.Speaking = uint64(npc)
	s.Start(talk.Paragraph)
	if !s.IsOpen() {
		if hasPlayer {
			controls.SetEnabled(true)
		}
		ui.Speaking = 0
	}
}

// closeConversation force-closes the open conversation, if any.
func closeConversation(w *ecs.World) {
	ecs.ForEach(w, component.DialogueUIComponent.Kind(), func(_ ecs.Entity, ui *component.DialogueUI) {
		if ui.Session != nil && ui.Session.IsOpen() {
			ui.Session.Close()
		}
	})
}

func playerControls(w *ecs.World) (controlsNode, bool) {
	p, ok := ecs.First(w, component.PlayerControllerComponent.Kind())
	if !ok {
		return controlsNode{}, false
	}
	return controlsNode{w: w, e: p}, true
}

func conversationCounter(w *ecs.World) *gate.ConversationCounter {
	e, ok := ecs.First(w, component.CounterComponent.Kind())
	if !ok {
		return nil
	}
	c, _ := ecs.Get(w, e, component.CounterComponent.Kind())
	return c.Counter
}

// scriptHost is what an NPC script's engine map reaches.
type scriptHost struct {
	w   *ecs.World
	npc ecs.Entity
}

func (h scriptHost) Animate() {
	if talk, ok := ecs.Get(h.w, h.npc, component.TalkComponent.Kind()); ok && talk.Driver != nil {
		talk.Driver.TriggerRandom()
	}
}

func (h scriptHost) Register(id string) {
	if c := conversationCounter(h.w); c != nil {
		c.RegisterConversation(id)
	}
}

func (h scriptHost) Prompt(text string, seconds float64) {
	e, ok := ecs.First(h.w, component.SelectorComponent.Kind())
	if !ok {
		return
	}
	if sel, ok := ecs.Get(h.w, e, component.SelectorComponent.Kind()); ok && sel.Selector != nil {
		sel.Selector.OverridePrompt(text, seconds)
	}
}
