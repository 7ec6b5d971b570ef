package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"promage2/console"
	"promage2/data"
	"promage2/generation"
)

const statusRows = 2

// Viewer steps through a pipeline's snapshots in a terminal
type Viewer struct {
	screen   tcell.Screen
	pipeline *generation.Pipeline
	console  *console.Console
	renderer *Renderer
}

// NewViewer creates a viewer drawing into screen. The screen must already
// be initialized.
func NewViewer(screen tcell.Screen, p *generation.Pipeline, c *console.Console, templates *data.MarkerTemplateManager) *Viewer {
	w, h := screen.Size()
	return &Viewer{
		screen:   screen,
		pipeline: p,
		console:  c,
		renderer: NewRenderer(templates, w, max(h-statusRows, 1)),
	}
}

// Run draws and handles input until the user quits
func (v *Viewer) Run() error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	v.Draw()
	for ev := range events {
		quit, err := v.handleEvent(ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		v.Draw()
	}
	return nil
}

func (v *Viewer) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true, nil
		}
		return v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		w, h := v.screen.Size()
		v.renderer.Viewport.W = w
		v.renderer.Viewport.H = max(h-statusRows, 1)
		v.screen.Sync()
	}
	return false, nil
}

// handleKey applies one key press. Arrows and hjkl pan, , and . step,
// r regenerates, space toggles highlighting, q quits.
func (v *Viewer) handleKey(key tcell.Key, r rune) (bool, error) {
	switch key {
	case tcell.KeyLeft:
		v.renderer.Viewport.Pan(-1, 0)
		return false, nil
	case tcell.KeyRight:
		v.renderer.Viewport.Pan(1, 0)
		return false, nil
	case tcell.KeyUp:
		v.renderer.Viewport.Pan(0, -1)
		return false, nil
	case tcell.KeyDown:
		v.renderer.Viewport.Pan(0, 1)
		return false, nil
	}

	switch r {
	case 'q':
		return true, nil
	case 'h':
		v.renderer.Viewport.Pan(-1, 0)
	case 'l':
		v.renderer.Viewport.Pan(1, 0)
	case 'k':
		v.renderer.Viewport.Pan(0, -1)
	case 'j':
		v.renderer.Viewport.Pan(0, 1)
	case ',':
		v.pipeline.SetStepIndex(v.pipeline.StepIndex() - 1)
	case '.':
		v.pipeline.SetStepIndex(v.pipeline.StepIndex() + 1)
	case ' ':
		v.renderer.Highlight = !v.renderer.Highlight
	case 'r':
		if err := v.pipeline.Regenerate(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Status returns the status line for the inspected snapshot
func (v *Viewer) Status() string {
	i := v.pipeline.StepIndex()
	name := "initial fill"
	if i > 0 {
		name = v.pipeline.Steps()[i-1].Name
	}
	return fmt.Sprintf("%s  step %d/%d: %s  [,/. step  r regen  space highlight  q quit]",
		v.pipeline.Def().Name, i, len(v.pipeline.Steps()), name)
}

// Draw renders the current snapshot, the status line and the newest
// console message
func (v *Viewer) Draw() {
	v.screen.Clear()
	if m := v.pipeline.Current(); m != nil {
		v.renderer.Draw(v.screen, m, v.pipeline.ChangedTiles(v.pipeline.StepIndex()))
	}

	row := v.renderer.Viewport.H
	DrawText(v.screen, 0, row, v.Status(), tcell.StyleDefault.Foreground(tcell.ColorWhite))
	if recent := v.console.RecentMessages(1); len(recent) > 0 {
		c := recent[0].GetColor()
		DrawText(v.screen, 0, row+1, recent[0].Text, tcell.StyleDefault.Foreground(rgb(c)))
	}
	v.screen.Show()
}
