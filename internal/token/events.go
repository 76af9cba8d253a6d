package token

import "sync"

// HoverEvent is published when the pointer enters or leaves a token.
type HoverEvent struct {
	Token   *Token
	Hovered bool
}

type hoverSub struct {
	id int
	fn func(HoverEvent)
}

// Events fans hover events out to subscribers in subscription order.
type Events struct {
	mu     sync.Mutex
	nextID int
	subs   []hoverSub
}

// Subscribe registers fn and returns a function that removes it.
func (e *Events) Subscribe(fn func(HoverEvent)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, hoverSub{id: id, fn: fn})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

func (e *Events) publish(ev HoverEvent) {
	e.mu.Lock()
	subs := make([]hoverSub, len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()
	for _, s := range subs {
		s.fn(ev)
	}
}

// EmitHoverIn signals that the pointer is over t.
func (t *Token) EmitHoverIn() { t.layer.events.publish(HoverEvent{Token: t, Hovered: true}) }

// EmitHoverOut signals that the pointer left t.
func (t *Token) EmitHoverOut() { t.layer.events.publish(HoverEvent{Token: t, Hovered: false}) }
