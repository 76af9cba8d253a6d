package token

import "slices"

// HasLowLightVision reports whether rules-based vision is enabled and the
// actor sees in dim light. Darkvision includes low-light vision.
func (t *Token) HasLowLightVision() bool {
	if !t.layer.settings.RulesBasedVision || t.actor == nil {
		return false
	}
	return t.actor.Senses.LowLightVision || t.actor.Senses.Darkvision
}

// HasDarkvision reports whether rules-based vision is enabled and the actor
// has darkvision.
func (t *Token) HasDarkvision() bool {
	return t.layer.settings.RulesBasedVision && t.actor != nil && t.actor.Senses.Darkvision
}

// IsVisionSource reports whether the scene is revealed through this token's
// eyes for the current user. With party vision on, every player-owned token
// counts for non-GM users.
func (t *Token) IsVisionSource() bool {
	l := t.layer
	if l.settings.PartyVision && t.actor.HasPlayerOwner() && !l.user.IsGM {
		return true
	}
	return t.isDefaultVisionSource()
}

// isDefaultVisionSource: a sighted token sees when controlled, or for a
// player who owns it while no other sighted token is controlled.
func (t *Token) isDefaultVisionSource() bool {
	l := t.layer
	if !l.settings.TokenVision || !t.doc.Sight {
		return false
	}
	if t.controlled {
		return true
	}
	if l.user.IsGM {
		return false
	}
	for _, o := range l.controlled {
		if o != t && o.doc.Sight && !o.doc.Hidden {
			return false
		}
	}
	return t.ownedBy(l.user)
}

func (t *Token) ownedBy(u User) bool {
	if u.IsGM {
		return true
	}
	return t.actor != nil && slices.Contains(t.actor.Owners, u.ID)
}
