package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	LogPanelWidth = 300
	logMaxEntries = 60
	logLineHeight = 11
)

// LogEntry is a single line in the event log.
type LogEntry struct {
	Tick    int
	Label   string // token name, or "table"
	Message string
}

// EventLog is a ring buffer of table events rendered on-screen.
type EventLog struct {
	entries []LogEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{entries: make([]LogEntry, logMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(tick int, label, msg string) {
	el.entries[el.head] = LogEntry{Tick: tick, Label: label, Message: msg}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []LogEntry {
	result := make([]LogEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// Draw renders the log panel at panelX, newest entries at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, LogPanelWidth, float32(panelH), color.RGBA{R: 14, G: 12, B: 18, A: 240}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1, color.RGBA{R: 70, G: 60, B: 90, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, LogPanelWidth, 16, color.RGBA{R: 28, G: 24, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "TABLE LOG", panelX+8, 2)

	entries := el.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const recent = 3
	y := 20
	for i, e := range entries {
		if i >= len(entries)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), LogPanelWidth-4, logLineHeight, color.RGBA{R: 40, G: 34, B: 52, A: 160}, false)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d [%s] %s", e.Tick, e.Label, e.Message), panelX+6, y)
		y += logLineHeight
	}
}
