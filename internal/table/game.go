package table

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/token-canvas/internal/grid"
	"github.com/Garsondee/token-canvas/internal/render"
	"github.com/Garsondee/token-canvas/internal/system"
	"github.com/Garsondee/token-canvas/internal/token"
)

// borderWidth is the pixel gap between the window edge and the scene view.
const borderWidth = 16

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

const (
	viewWidth  = 1280
	viewHeight = 800
)

var (
	sceneBackground = color.RGBA{R: 48, G: 44, B: 40, A: 255}
	gridLine        = color.RGBA{R: 0, G: 0, B: 0, A: 70}
	dimLight        = color.RGBA{R: 255, G: 210, B: 120, A: 28}
	brightLight     = color.RGBA{R: 255, G: 225, B: 150, A: 50}
	darkLight       = color.RGBA{R: 40, G: 0, B: 60, A: 90}
	rulerLine       = color.RGBA{R: 250, G: 220, B: 80, A: 230}
)

// Game is the ebiten game driving a Table.
type Game struct {
	*Table

	width, height int
	hudBuf        *ebiten.Image

	prevKeys       map[ebiten.Key]bool
	prevMouseLeft  bool
	prevMouseRight bool
	showHUD        bool
	lastUpdate     time.Time
}

// New creates the viewer window state for a ready system.
func New(ctx context.Context, sys *system.System, canvas *render.Canvas, logger *slog.Logger, opts ...Option) *Game {
	g := &Game{
		Table:    NewTable(ctx, sys, canvas, logger, opts...),
		width:    borderWidth + viewWidth + borderWidth + render.LogPanelWidth,
		height:   borderWidth + viewHeight + borderWidth,
		prevKeys: make(map[ebiten.Key]bool),
		showHUD:  true,
	}
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)

	dims := sys.Layer().Grid().Dimensions
	g.cam = Camera{
		Zoom:  0.75,
		ViewW: viewWidth,
		ViewH: viewHeight,
		OffX:  borderWidth,
		OffY:  borderWidth,
	}
	if dims != nil {
		g.cam.X, g.cam.Y = dims.Width/2, dims.Height/2
	}
	return g
}

func (g *Game) Update() error {
	now := time.Now()
	frame := time.Second / time.Duration(ebiten.TPS())
	if !g.lastUpdate.IsZero() {
		frame = now.Sub(g.lastUpdate)
	}
	g.lastUpdate = now

	g.canvas.Update()
	g.Tick(frame)
	g.handleInput()
	return nil
}

// keyPressed is edge-triggered: true only on the frame the key goes down.
func (g *Game) keyPressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

func (g *Game) handleInput() {
	cur := map[ebiten.Key]bool{}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	// Camera pan: WASD.
	const panSpeed = 8.0
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		g.cam.Pan(0, -panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		g.cam.Pan(0, panSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		g.cam.Pan(-panSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		g.cam.Pan(panSpeed, 0)
	}

	// Camera zoom: mouse wheel or =/- keys.
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.cam.ZoomBy(math.Pow(1.12, wy))
	}
	if g.keyPressed(cur, ebiten.KeyEqual) {
		g.cam.ZoomBy(1.25)
	}
	if g.keyPressed(cur, ebiten.KeyMinus) {
		g.cam.ZoomBy(1 / 1.25)
	}
	if dims := g.layer().Grid().Dimensions; dims != nil {
		g.cam.Clamp(dims.Width, dims.Height)
	}

	// Arrows: nudge controlled tokens one cell.
	switch {
	case g.keyPressed(cur, ebiten.KeyArrowUp):
		g.Nudge(0, -1)
	case g.keyPressed(cur, ebiten.KeyArrowDown):
		g.Nudge(0, 1)
	case g.keyPressed(cur, ebiten.KeyArrowLeft):
		g.Nudge(-1, 0)
	case g.keyPressed(cur, ebiten.KeyArrowRight):
		g.Nudge(1, 0)
	}

	// Token commands.
	if g.keyPressed(cur, ebiten.KeyI) {
		g.CycleImages()
	}
	if g.keyPressed(cur, ebiten.KeyBracketRight) {
		g.Resize(1)
	}
	if g.keyPressed(cur, ebiten.KeyBracketLeft) {
		g.Resize(-1)
	}
	step := 5
	if shift {
		step = 1
	}
	if g.keyPressed(cur, ebiten.KeyJ) {
		g.ApplyHitPoints(-step)
	}
	if g.keyPressed(cur, ebiten.KeyK) {
		g.ApplyHitPoints(step)
	}
	if g.keyPressed(cur, ebiten.KeyT) {
		g.AdvanceClock(10 * time.Minute)
	}
	if g.keyPressed(cur, ebiten.KeyC) {
		if err := g.CopyMeasurement(); err != nil {
			g.logger.Warn("copy failed", "error", err)
		}
	}
	if g.keyPressed(cur, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.keyPressed(cur, ebiten.KeyEscape) {
		g.layer().ReleaseAll()
		g.target = nil
		g.measure()
	}

	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	inView := g.cam.InView(sx, sy)
	world := g.cam.ScreenToWorld(sx, sy)
	if inView {
		g.HoverAt(world)
	} else {
		g.HoverAt(grid.Point{X: math.Inf(-1), Y: math.Inf(-1)})
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !g.prevMouseLeft && inView {
		g.SelectAt(world, shift)
	}
	g.prevMouseLeft = left

	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if right && !g.prevMouseRight && inView {
		g.TargetAt(world)
	}
	g.prevMouseRight = right

	g.prevKeys = cur
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 12, B: 14, A: 255})

	vr := image.Rect(borderWidth, borderWidth, borderWidth+viewWidth, borderWidth+viewHeight)
	view := screen.SubImage(vr).(*ebiten.Image)
	geo := g.cam.GeoM()

	g.drawScene(view, geo)
	g.canvas.Draw(view, g.layer(), geo, render.DrawOptions{
		Hovered: g.hovered,
		Target:  g.target,
		ShowAll: g.sys.Config().User.IsGM,
	})
	g.drawRuler(view, geo)

	vector.StrokeRect(screen, borderWidth-1, borderWidth-1, viewWidth+2, viewHeight+2, 2, color.RGBA{R: 90, G: 80, B: 110, A: 255}, false)
	g.canvas.EventLog().Draw(screen, borderWidth+viewWidth+borderWidth, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawInspector(screen)
}

// drawScene draws the scene background, grid, darkness and light radii.
func (g *Game) drawScene(dst *ebiten.Image, geo ebiten.GeoM) {
	m := g.layer().Grid()
	if m.Dimensions == nil {
		ebitenutil.DebugPrintAt(dst, "no active scene", borderWidth+8, borderWidth+8)
		return
	}
	dims := m.Dimensions
	x0, y0 := geo.Apply(0, 0)
	x1, y1 := geo.Apply(dims.Width, dims.Height)
	vector.FillRect(dst, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), sceneBackground, false)

	if m.Type == grid.Square && dims.Size > 0 {
		for x := 0.0; x <= dims.Width; x += dims.Size {
			sx, _ := geo.Apply(x, 0)
			vector.StrokeLine(dst, float32(sx), float32(y0), float32(sx), float32(y1), 1, gridLine, false)
		}
		for y := 0.0; y <= dims.Height; y += dims.Size {
			_, sy := geo.Apply(0, y)
			vector.StrokeLine(dst, float32(x0), float32(sy), float32(x1), float32(sy), 1, gridLine, false)
		}
	}

	if d := g.sys.PerceivedDarkness(); d > 0 {
		vector.FillRect(dst, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), color.RGBA{A: uint8(200 * d)}, false)
	}

	pxPerUnit := dims.Size / math.Max(dims.Distance, 1e-9)
	for _, t := range g.layer().Tokens() {
		light := t.EmittedLight()
		if light.Dim <= 0 && light.Bright <= 0 {
			continue
		}
		c := t.Footprint().Center()
		cx, cy := geo.Apply(c.X, c.Y)
		z := float32(g.cam.Zoom * pxPerUnit)
		if t.EmitsDarkness() {
			vector.FillCircle(dst, float32(cx), float32(cy), float32(math.Max(light.Dim, light.Bright))*z, darkLight, true)
			continue
		}
		if light.Dim > 0 {
			vector.FillCircle(dst, float32(cx), float32(cy), float32(light.Dim)*z, dimLight, true)
		}
		if light.Bright > 0 {
			vector.FillCircle(dst, float32(cx), float32(cy), float32(light.Bright)*z, brightLight, true)
		}
	}
}

// drawRuler draws a line from the first controlled token to the target.
func (g *Game) drawRuler(dst *ebiten.Image, geo ebiten.GeoM) {
	controlled := g.layer().Controlled()
	if g.target == nil || g.measurement == "" || len(controlled) == 0 {
		return
	}
	a := controlled[0].Footprint().Center()
	b := g.target.Footprint().Center()
	ax, ay := geo.Apply(a.X, a.Y)
	bx, by := geo.Apply(b.X, b.Y)
	vector.StrokeLine(dst, float32(ax), float32(ay), float32(bx), float32(by), 2, rulerLine, true)
	ebitenutil.DebugPrintAt(dst, g.measurement, int((ax+bx)/2)+6, int((ay+by)/2)-18)
}

// hudLines is the key legend and table status.
func (g *Game) hudLines() []string {
	lines := []string{g.sys.Config().Scene.Name}
	if clock := g.sys.Clock(); clock != nil {
		lines = append(lines, clock.String())
	}
	dark := g.sys.PerceivedDarkness()
	lines = append(lines,
		"light: "+token.LevelAt(dark).String(),
		"click=control  shift+click=add  right=target",
		"WASD=pan  scroll/=/-=zoom  arrows=move",
		"I=image  [ ]=size  J/K=hp  T=+10min",
		"C=copy ruler  Esc=release  H=hud",
	)
	if g.measurement != "" {
		lines = append(lines, g.measurement)
	}
	return lines
}

// drawHUD renders the legend into hudBuf at 1x and blits it at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := g.hudLines()
	const lineH = 12
	const charW = 6
	const padX, padY = 5, 4

	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(borderWidth/hudScale + 4)
	by := float32(g.height/hudScale) - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 10, G: 8, B: 14, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1, color.RGBA{R: 90, G: 80, B: 120, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}

// Size is the window size the game lays out for.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
