package panel

// startBackgroundRecreation begins rebuilding the conversation on a detached
// surface. The visible surface keeps showing the old content untouched;
// tracking state is reset because every message will be recreated from
// scratch by the operations that follow.
func (p *Panel) startBackgroundRecreation() {
	if p.recreating {
		p.log.Warn("background recreation already in progress, restarting")
	}
	p.recreating = true
	p.background = NewSurface()
	p.clearTrackingState()
	p.log.Debug("background recreation started")
}

// finishBackgroundRecreation atomically replaces the visible content with the
// rebuilt surface and issues the single forced scroll for the whole
// recreation. Without a matching start it is a no-op.
func (p *Panel) finishBackgroundRecreation() {
	if !p.recreating || p.background == nil {
		p.log.Warn("finish_background_recreation without active recreation")
		p.recreating = false
		p.background = nil
		return
	}
	p.background.MoveAllTo(p.live)
	p.background = nil
	p.recreating = false
	p.deps.Scroll.ForceScrollToBottom()
	p.log.Debug("background recreation finished")
}
