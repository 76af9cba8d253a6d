package table

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Garsondee/token-canvas/internal/grid"
	"github.com/Garsondee/token-canvas/internal/token"
)

var emptySpace = grid.Point{X: 950, Y: 950}

func TestSelectAt_ReplacesAndReleases(t *testing.T) {
	tt := newTestTable(t)

	if got := tt.SelectAt(tt.centre("amiri"), false); got != tt.tok("amiri") {
		t.Fatalf("expected amiri selected, got %v", got)
	}
	tt.SelectAt(tt.centre("goblin"), false)
	if c := tt.sys.Layer().Controlled(); len(c) != 1 || c[0] != tt.tok("goblin") {
		t.Fatalf("expected only goblin controlled, got %d tokens", len(c))
	}

	tt.SelectAt(emptySpace, false)
	if c := tt.sys.Layer().Controlled(); len(c) != 0 {
		t.Fatalf("expected release on empty click, got %d controlled", len(c))
	}
}

func TestSelectAt_Additive(t *testing.T) {
	tt := newTestTable(t)

	tt.SelectAt(tt.centre("amiri"), false)
	tt.SelectAt(tt.centre("ogre"), true)
	if n := len(tt.sys.Layer().Controlled()); n != 2 {
		t.Fatalf("expected 2 controlled, got %d", n)
	}

	tt.SelectAt(tt.centre("amiri"), true)
	if tt.tok("amiri").IsControlled() {
		t.Fatal("expected shift-click on a controlled token to release it")
	}
	tt.SelectAt(emptySpace, true)
	if !tt.tok("ogre").IsControlled() {
		t.Fatal("expected shift-click on empty space to keep the selection")
	}
}

func TestTargetAt_Measures(t *testing.T) {
	tt := newTestTable(t)
	tt.SelectAt(tt.centre("amiri"), false)

	tt.TargetAt(tt.centre("goblin"))

	if got, want := tt.Measurement(), "Amiri -> Goblin: 10 ft"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	tt.TargetAt(emptySpace)
	if tt.Target() != nil || tt.Measurement() != "" {
		t.Fatalf("expected the ruler to clear, got %q", tt.Measurement())
	}
}

func TestTargetAt_LargeTokenUsesNearestSquares(t *testing.T) {
	tt := newTestTable(t)
	tt.SelectAt(tt.centre("goblin"), false)

	tt.TargetAt(tt.centre("ogre"))

	// goblin at column 3 row 0; the nearest ogre square is column 5 row 2,
	// one diagonal step away.
	if got, want := tt.Measurement(), "Goblin -> Ogre: 5 ft"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCopyMeasurement(t *testing.T) {
	tt := newTestTable(t)
	if err := tt.CopyMeasurement(); err == nil {
		t.Fatal("expected an error with nothing measured")
	}

	tt.SelectAt(tt.centre("amiri"), false)
	tt.TargetAt(tt.centre("goblin"))
	if err := tt.CopyMeasurement(); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if len(tt.copied) != 1 || tt.copied[0] != "Amiri -> Goblin: 10 ft" {
		t.Fatalf("unexpected clipboard contents %v", tt.copied)
	}
}

func TestCopyMeasurement_ClipboardError(t *testing.T) {
	boom := errors.New("no clipboard")
	tt := newTestTable(t, withClipboardError(boom))
	tt.SelectAt(tt.centre("amiri"), false)
	tt.TargetAt(tt.centre("goblin"))

	if err := tt.CopyMeasurement(); !errors.Is(err, boom) {
		t.Fatalf("expected the clipboard error, got %v", err)
	}
}

func TestCycleImages_SwapsIcon(t *testing.T) {
	tt := newTestTable(t)
	amiri := tt.tok("amiri")
	tt.SelectAt(tt.centre("amiri"), false)

	actions := tt.CycleImages()
	if len(actions) != 1 || actions[0].Outcome != token.OutcomeSwapping {
		t.Fatalf("expected one swapping redraw, got %+v", actions)
	}
	tt.settle(actions)
	if src := amiri.Visual().Icon.Src; src != "amiri-rage.png" {
		t.Fatalf("expected amiri-rage.png, got %s", src)
	}

	tt.settle(tt.CycleImages())
	if src := amiri.Visual().Icon.Src; src != "amiri.png" {
		t.Fatalf("expected the cycle to wrap to amiri.png, got %s", src)
	}
}

func TestCycleImages_SkipsTokensWithoutAlternates(t *testing.T) {
	tt := newTestTable(t)
	tt.SelectAt(tt.centre("goblin"), false)

	if actions := tt.CycleImages(); len(actions) != 0 {
		t.Fatalf("expected no redraw, got %d", len(actions))
	}
}

func TestResize_RefreshesWithoutReload(t *testing.T) {
	tt := newTestTable(t)
	amiri := tt.tok("amiri")
	icon := amiri.Visual().Icon
	tt.SelectAt(tt.centre("amiri"), false)
	tt.TargetAt(tt.centre("goblin"))

	actions := tt.Resize(1)

	if actions[0].Outcome != token.OutcomeRefreshed || !actions[0].Signals.Size {
		t.Fatalf("expected a size refresh, got %+v", actions[0])
	}
	if amiri.Visual().Icon != icon {
		t.Fatal("expected the icon to be kept on resize")
	}
	if w := amiri.Visual().HitArea.W; w != 200 {
		t.Fatalf("expected hit area 200, got %v", w)
	}
	if icon.Width != 200 {
		t.Fatalf("expected the icon refit to 200, got %v", icon.Width)
	}
	if got, want := tt.Measurement(), "Amiri -> Goblin: 5 ft"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	tt.Resize(-5)
	if d := amiri.Declared(); d.Width != minTokenSize || d.Height != minTokenSize {
		t.Fatalf("expected the size floor %v, got %vx%v", minTokenSize, d.Width, d.Height)
	}
}

func TestApplyHitPoints_ClampsAndShowsChange(t *testing.T) {
	tt := newTestTable(t)
	amiri := tt.tok("amiri")
	tt.SelectAt(tt.centre("amiri"), false)

	tt.ApplyHitPoints(-25)
	if hp := amiri.Actor().HitPoints.Value; hp != 0 {
		t.Fatalf("expected hp clamped to 0, got %d", hp)
	}
	if n := tt.canvas.ScrollingTexts(); n != 1 {
		t.Fatalf("expected 1 floating text, got %d", n)
	}
	recent := tt.canvas.EventLog().Recent()
	if last := recent[len(recent)-1]; last.Message != "hp -20" {
		t.Fatalf("expected the applied change -20, got %q", last.Message)
	}
	if hud, _ := tt.canvas.HUD(amiri); hud.HP == nil || hud.HP.Value != 0 {
		t.Fatalf("expected the HUD to show 0 hp, got %+v", hud.HP)
	}

	tt.ApplyHitPoints(100)
	if hp := amiri.Actor().HitPoints.Value; hp != 30 {
		t.Fatalf("expected hp clamped to max 30, got %d", hp)
	}
}

func TestApplyHitPoints_NoChangeAtMax(t *testing.T) {
	tt := newTestTable(t)
	tt.SelectAt(tt.centre("goblin"), false)

	tt.ApplyHitPoints(5)
	if n := tt.canvas.ScrollingTexts(); n != 0 {
		t.Fatalf("expected no floating text for a zero change, got %d", n)
	}
}

func TestHoverAt_EmitsInAndOut(t *testing.T) {
	tt := newTestTable(t)
	var events []string
	tt.sys.Layer().Events().Subscribe(func(ev token.HoverEvent) {
		dir := "out"
		if ev.Hovered {
			dir = "in"
		}
		events = append(events, ev.Token.ID()+" "+dir)
	})

	tt.HoverAt(tt.centre("amiri"))
	tt.HoverAt(tt.centre("amiri"))
	tt.HoverAt(tt.centre("goblin"))
	tt.HoverAt(emptySpace)

	want := "amiri in,amiri out,goblin in,goblin out"
	if got := strings.Join(events, ","); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNudge_SnapsToGrid(t *testing.T) {
	tt := newTestTable(t)
	amiri := tt.tok("amiri")
	amiri.MoveTo(30, 10)
	tt.SelectAt(tt.centre("amiri"), false)

	tt.Nudge(1, 1)

	if fp := amiri.Footprint(); fp.X != 100 || fp.Y != 100 {
		t.Fatalf("expected (100,100), got (%v,%v)", fp.X, fp.Y)
	}
}

func TestAdvanceClock(t *testing.T) {
	tt := newTestTable(t)
	tt.AdvanceClock(10 * time.Minute)

	if got := tt.sys.Clock().String(); got != "day 1 12:10" {
		t.Fatalf("expected day 1 12:10, got %s", got)
	}
}

func TestInspectorLines(t *testing.T) {
	tt := newTestTable(t)
	if lines := tt.InspectorLines(); lines != nil {
		t.Fatalf("expected no inspector without a controlled token, got %v", lines)
	}

	tt.SelectAt(tt.centre("amiri"), false)
	text := strings.Join(tt.InspectorLines(), "\n")
	for _, want := range []string{"AMIRI", "hp 20/30", "kind: character", "Amiri: none"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in inspector:\n%s", want, text)
		}
	}
}

func TestTargetAt_GridlessMeasuresCentres(t *testing.T) {
	tt := newTestTable(t, withScene(testScene+"grid: {type: gridless}\n"))
	tt.SelectAt(tt.centre("amiri"), false)

	tt.TargetAt(tt.centre("goblin"))

	if got, want := tt.Measurement(), "Amiri -> Goblin: 15 ft"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
