package token

import "slices"

// Control gives the user control of t. With releaseOthers every other
// controlled token is released first.
func (t *Token) Control(releaseOthers bool) {
	l := t.layer
	if releaseOthers {
		for _, o := range slices.Clone(l.controlled) {
			if o != t {
				o.Release()
			}
		}
	}
	if t.controlled || t.destroyed {
		return
	}
	t.controlled = true
	l.controlled = append(l.controlled, t)
	t.onControl()
}

// Release gives up control of t.
func (t *Token) Release() {
	if !t.controlled {
		return
	}
	l := t.layer
	t.controlled = false
	l.controlled = slices.DeleteFunc(l.controlled, func(o *Token) bool { return o == t })
	t.onRelease()
}

// onControl refreshes the effect panel and lets lighting adopt this token's
// senses.
func (t *Token) onControl() {
	l := t.layer
	if l.ready() {
		l.panel.Refresh()
	}
	l.lighting.SetPerceivedLightLevel(t)
}

func (t *Token) onRelease() {
	l := t.layer
	l.panel.Refresh()
	l.lighting.SetPerceivedLightLevel(nil)
}
