package token

import "math"

// Darkness thresholds of the scene light levels.
const (
	BrightThreshold   = 0.25 // at or below: bright light
	DarknessThreshold = 0.75 // at or above: darkness
)

// LightLevel is the coarse light level of a scene.
type LightLevel uint8

const (
	LevelBright LightLevel = iota
	LevelDim
	LevelDarkness
)

func (l LightLevel) String() string {
	switch l {
	case LevelBright:
		return "bright"
	case LevelDim:
		return "dim"
	}
	return "darkness"
}

// LevelAt classifies a scene darkness value in [0,1].
func LevelAt(darkness float64) LightLevel {
	switch {
	case darkness <= BrightThreshold:
		return LevelBright
	case darkness >= DarknessThreshold:
		return LevelDarkness
	}
	return LevelDim
}

// PerceivedDarkness is the darkness t sees. Low-light vision sees dim light
// as bright; darkvision also sees darkness as bright. A nil token perceives
// the scene unmodified.
func PerceivedDarkness(darkness float64, t *Token) float64 {
	if t == nil {
		return darkness
	}
	switch LevelAt(darkness) {
	case LevelDim:
		if t.HasLowLightVision() {
			return BrightThreshold
		}
	case LevelDarkness:
		if t.HasDarkvision() {
			return BrightThreshold
		}
	}
	return darkness
}

// EmitsDarkness reports whether the token's light has negative luminosity.
func (t *Token) EmitsDarkness() bool { return t.doc.Light.Luminosity < 0 }

// EmittedLight is the light source the token contributes to the scene.
// While a controlled token has low-light vision or darkvision, non-NPC
// lights are treated as all bright: the bright radius grows to cover the
// dim radius. The stored light data is left untouched.
func (t *Token) EmittedLight() Light {
	light := t.doc.Light
	if t.actorKind() == KindNPC || !(t.layer.HasLowLightVision() || t.layer.HasDarkvision()) {
		return light
	}
	light.Bright = math.Max(light.Dim, light.Bright)
	light.Dim = 0
	return light
}
