// Package term renders an automaton in a terminal with tcell. Each cell is a
// coloured glyph followed by a spacer column so cells look roughly square.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"toroca/internal/app"
	"toroca/internal/render"
	"toroca/internal/ui"
	"toroca/pkg/core"
	"toroca/pkg/rules"
)

const frameInterval = time.Second / 60

// Help is the key reference printed under the status line.
const Help = "1-4 rule  f family  space pause  n step  r reset  s reseed  +/- speed  h status  q quit"

// Viewer draws a controlled sim on a tcell screen and feeds key presses
// back into the controller.
type Viewer struct {
	screen tcell.Screen
	ctrl   *app.Controller
	styles [core.States]tcell.Style
	text   tcell.Style
}

// New builds a viewer. The screen must already be initialised.
func New(screen tcell.Screen, ctrl *app.Controller) *Viewer {
	v := &Viewer{
		screen: screen,
		ctrl:   ctrl,
		text:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
	for i, c := range render.Palette() {
		v.styles[i] = tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).
			Background(tcell.ColorBlack)
	}
	return v
}

// Style returns the style used for cells in state s.
func (v *Viewer) Style(s core.CellState) tcell.Style { return v.styles[s.Value()] }

// Run draws and steps until ctx is cancelled, the quit key is pressed or the
// screen stops delivering events.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case <-ticker.C:
			if v.ctrl.Tick() {
				v.Draw()
			}
		}
	}
}

// HandleEvent applies ev to the controller and reports whether the viewer
// should quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		return false
	case *tcell.EventKey:
		action, rule := KeyAction(ev)
		return v.ctrl.Apply(action, rule)
	}
	return false
}

// KeyAction maps a key event to a controller action.
func KeyAction(ev *tcell.EventKey) (app.Action, rules.Name) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return app.ActionQuit, ""
	case tcell.KeyEnter:
		return app.ActionResume, ""
	case tcell.KeyRune:
	default:
		return app.ActionNone, ""
	}
	switch r := ev.Rune(); r {
	case 'q', 'Q':
		return app.ActionQuit, ""
	case ' ':
		return app.ActionTogglePause, ""
	case 'n':
		return app.ActionStepOnce, ""
	case 'r':
		return app.ActionReset, ""
	case 's':
		return app.ActionReseed, ""
	case 'f':
		return app.ActionNextFamily, ""
	case 'h':
		return app.ActionToggleOverlay, ""
	case '+', '=':
		return app.ActionFaster, ""
	case '-', '_':
		return app.ActionSlower, ""
	case '1', '2', '3', '4':
		if name, ok := app.RuleForDigit(int(r - '0')); ok {
			return app.ActionSelectRule, name
		}
	}
	return app.ActionNone, ""
}

// Draw paints the current generation and, when enabled, the status lines.
func (v *Viewer) Draw() {
	sim := v.ctrl.Sim()
	size := sim.Size()
	cells := sim.Cells()
	sw, sh := v.screen.Size()

	v.screen.Clear()
	for y := 0; y < size.H && y < sh; y++ {
		for x := 0; x < size.W && 2*x < sw; x++ {
			s := core.NewCellState(int(cells[y*size.W+x]))
			v.screen.SetContent(2*x, y, render.Glyphs[s.Value()], nil, v.Style(s))
			if 2*x+1 < sw {
				v.screen.SetContent(2*x+1, y, ' ', nil, v.text)
			}
		}
	}
	if v.ctrl.ShowOverlay() {
		v.drawText(0, size.H, ui.StatusLine(sim, v.ctrl.Paused(), v.ctrl.TPS()))
		v.drawText(0, size.H+1, Help)
	}
	v.screen.Show()
}

func (v *Viewer) drawText(x, y int, s string) {
	sw, sh := v.screen.Size()
	if y >= sh {
		return
	}
	for _, r := range s {
		if x >= sw {
			return
		}
		v.screen.SetContent(x, y, r, nil, v.text)
		x++
	}
}
