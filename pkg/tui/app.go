package tui

import (
	"context"

	"github.com/rivo/tview"

	"github.com/tidelight/aipane/pkg/config"
	"github.com/tidelight/aipane/pkg/events"
	"github.com/tidelight/aipane/pkg/logger"
	"github.com/tidelight/aipane/pkg/panel"
	"github.com/tidelight/aipane/pkg/transport"
)

// App ties the pipeline to a tview application. All panel mutation happens on
// the UI goroutine via QueueUpdateDraw; the transport goroutine only queues.
type App struct {
	app   *tview.Application
	panel *panel.Panel
	view  *PanelView
}

// NewApp builds the application. deps supplies the backend collaborators;
// the scroll manager is wired in here because it belongs to the view.
func NewApp(deps panel.Deps) *App {
	a := &App{app: tview.NewApplication()}

	// The view needs the panel and the panel needs the view's scroll
	// manager; break the cycle with a late-bound forwarder.
	forwarder := &forwardingScroll{}
	deps.Scroll = forwarder
	a.panel = panel.New(deps)
	a.view = NewPanelView(a.app, a.panel)
	forwarder.target = a.view.ScrollManager()

	a.view.SetSendHandler(func(content string) {
		a.panel.AddUserMessage(content)
		a.view.Redraw()
	})

	a.app.SetRoot(a.view, true)
	return a
}

// Panel returns the pipeline for external wiring.
func (a *App) Panel() *panel.Panel { return a.panel }

// Admit queues one event onto the UI goroutine and repaints. Safe to call
// from any goroutine.
func (a *App) Admit(ev events.Event) error {
	a.app.QueueUpdateDraw(func() {
		if err := a.panel.Admit(ev); err != nil {
			logger.Error("event rejected: %v", err)
		}
		a.view.Redraw()
	})
	return nil
}

// Run starts the replay source, if configured, and blocks in the UI loop.
func (a *App) Run(ctx context.Context) error {
	cfg := config.Get()
	if cfg.Replay.Path != "" {
		replayer := transport.NewReplayer(cfg.Replay.Delay, a.Admit)
		go func() {
			if err := replayer.ReplayFile(ctx, cfg.Replay.Path); err != nil {
				logger.Error("replay failed: %v", err)
			}
		}()
	}
	return a.app.Run()
}

// Stop terminates the UI loop.
func (a *App) Stop() { a.app.Stop() }

// forwardingScroll defers to the real scroll manager once the view exists.
type forwardingScroll struct {
	target panel.ScrollManager
}

func (f *forwardingScroll) SmartScrollToBottom() {
	if f.target != nil {
		f.target.SmartScrollToBottom()
	}
}

func (f *forwardingScroll) ForceScrollToBottom() {
	if f.target != nil {
		f.target.ForceScrollToBottom()
	}
}

func (f *forwardingScroll) DisableAnimations() {
	if f.target != nil {
		f.target.DisableAnimations()
	}
}

func (f *forwardingScroll) EnableAnimations() {
	if f.target != nil {
		f.target.EnableAnimations()
	}
}

func (f *forwardingScroll) SetActivelyStreaming(streaming bool) {
	if f.target != nil {
		f.target.SetActivelyStreaming(streaming)
	}
}

func (f *forwardingScroll) Offset() int {
	if f.target != nil {
		return f.target.Offset()
	}
	return 0
}
