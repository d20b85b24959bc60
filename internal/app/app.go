//go:build ebiten

package app

import (
	"toroca/internal/render"
	"toroca/internal/ui"
	"toroca/pkg/rules"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var ruleKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4}

// Game adapts a controlled simulation to the ebiten.Game interface.
type Game struct {
	ctrl    *Controller
	painter *render.GridPainter
	overlay *ui.Overlay
	scale   int
}

// New constructs a Game for the provided controller.
func New(ctrl *Controller, scale int) *Game {
	size := ctrl.Sim().Size()
	return &Game{
		ctrl:    ctrl,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(ctrl.Sim()),
		scale:   scale,
	}
}

// Update handles per-frame input and advances the simulation when due.
func (g *Game) Update() error {
	for _, a := range pressedActions() {
		if g.ctrl.Apply(a.action, a.rule) {
			return ebiten.Termination
		}
	}
	g.ctrl.Tick()
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.ctrl.Sim().Cells(), g.scale)
	if g.ctrl.ShowOverlay() {
		g.overlay.Draw(screen, g.ctrl.Paused(), g.ctrl.TPS())
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctrl.Sim().Size()
	return s.W * g.scale, s.H * g.scale
}

type keyAction struct {
	action Action
	rule   rules.Name
}

func pressedActions() []keyAction {
	var out []keyAction
	just := inpututil.IsKeyJustPressed
	if just(ebiten.KeyQ) || just(ebiten.KeyEscape) {
		out = append(out, keyAction{action: ActionQuit})
	}
	if just(ebiten.KeySpace) {
		out = append(out, keyAction{action: ActionTogglePause})
	}
	if just(ebiten.KeyEnter) {
		out = append(out, keyAction{action: ActionResume})
	}
	if just(ebiten.KeyN) {
		out = append(out, keyAction{action: ActionStepOnce})
	}
	if just(ebiten.KeyR) {
		out = append(out, keyAction{action: ActionReset})
	}
	if just(ebiten.KeyS) {
		out = append(out, keyAction{action: ActionReseed})
	}
	if just(ebiten.KeyF) {
		out = append(out, keyAction{action: ActionNextFamily})
	}
	if just(ebiten.KeyH) {
		out = append(out, keyAction{action: ActionToggleOverlay})
	}
	if just(ebiten.KeyEqual) || just(ebiten.KeyKPAdd) {
		out = append(out, keyAction{action: ActionFaster})
	}
	if just(ebiten.KeyMinus) || just(ebiten.KeyKPSubtract) {
		out = append(out, keyAction{action: ActionSlower})
	}
	for i, k := range ruleKeys {
		if !just(k) {
			continue
		}
		if name, ok := RuleForDigit(i + 1); ok {
			out = append(out, keyAction{action: ActionSelectRule, rule: name})
		}
	}
	return out
}
