package system

import (
	"path"
	"strings"

	"github.com/Garsondee/token-canvas/internal/token"
)

// EffectRow is one controlled token and the effects on it.
type EffectRow struct {
	TokenID string
	Name    string
	Effects []string // display names derived from the icon paths
}

// EffectPanel lists the status effects on the controlled tokens.
type EffectPanel struct {
	sys       *System
	rows      []EffectRow
	refreshes int
}

func newEffectPanel(s *System) *EffectPanel { return &EffectPanel{sys: s} }

// Refresh rebuilds the rows from the currently controlled tokens.
func (p *EffectPanel) Refresh() {
	p.refreshes++
	p.rows = p.rows[:0]
	for _, t := range p.sys.layer.Controlled() {
		row := EffectRow{TokenID: t.ID(), Name: t.Name()}
		for _, e := range t.Effects() {
			row.Effects = append(row.Effects, effectName(e))
		}
		p.rows = append(p.rows, row)
	}
}

// Rows returns the rows built by the last Refresh.
func (p *EffectPanel) Rows() []EffectRow { return p.rows }

// Refreshes counts Refresh calls.
func (p *EffectPanel) Refreshes() int { return p.refreshes }

// Lines renders the rows for a text panel.
func (p *EffectPanel) Lines() []string {
	if len(p.rows) == 0 {
		return []string{"no token controlled"}
	}
	lines := make([]string, 0, len(p.rows))
	for _, r := range p.rows {
		effects := "none"
		if len(r.Effects) > 0 {
			effects = strings.Join(r.Effects, ", ")
		}
		lines = append(lines, r.Name+": "+effects)
	}
	return lines
}

// effectName turns "icons/conditions/off-guard.webp" into "off-guard".
func effectName(icon string) string {
	base := path.Base(icon)
	return strings.TrimSuffix(base, path.Ext(base))
}

var _ token.EffectPanel = (*EffectPanel)(nil)
