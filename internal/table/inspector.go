package table

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const inspectorWidth = 280

// InspectorLines describes the first controlled token and the effect panel.
func (t *Table) InspectorLines() []string {
	controlled := t.layer().Controlled()
	if len(controlled) == 0 {
		return nil
	}
	tok := controlled[0]
	d := tok.Declared()
	lines := []string{
		strings.ToUpper(tok.Name()),
		fmt.Sprintf("size %gx%g  image %s", d.Width, d.Height, d.Image),
		fmt.Sprintf("vision source: %t", tok.IsVisionSource()),
		fmt.Sprintf("low-light: %t  darkvision: %t", tok.HasLowLightVision(), tok.HasDarkvision()),
	}
	if a := tok.Actor(); a != nil {
		lines = append(lines, "kind: "+string(a.Kind))
		if a.HitPoints != nil {
			lines = append(lines, fmt.Sprintf("hp %d/%d", a.HitPoints.Value, a.HitPoints.Max))
		}
	}
	if l := tok.EmittedLight(); l.Dim > 0 || l.Bright > 0 {
		lines = append(lines, fmt.Sprintf("light dim %g bright %g", l.Dim, l.Bright))
	}
	if icon := tok.Visual().Icon; icon != nil {
		lines = append(lines, fmt.Sprintf("icon %.0fx%.0f scale %.2f", icon.Width, icon.Height, icon.ScaleX))
	}
	lines = append(lines, "", "EFFECTS")
	lines = append(lines, t.sys.Panel().Lines()...)
	return lines
}

// drawInspector renders the inspector panel in the top-right of the view.
func (g *Game) drawInspector(screen *ebiten.Image) {
	lines := g.InspectorLines()
	if len(lines) == 0 {
		return
	}
	const lineH = 14
	x := float32(borderWidth + viewWidth - inspectorWidth - 8)
	y := float32(borderWidth + 8)
	h := float32(len(lines)*lineH + 10)

	vector.FillRect(screen, x, y, inspectorWidth, h, color.RGBA{R: 10, G: 8, B: 14, A: 220}, false)
	vector.StrokeRect(screen, x, y, inspectorWidth, h, 1, color.RGBA{R: 255, G: 150, B: 30, A: 200}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(x)+8, int(y)+5+i*lineH)
	}
}
