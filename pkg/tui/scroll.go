package tui

import "github.com/rivo/tview"

// ViewScrollManager drives auto-scroll for the message view. Smart scrolling
// follows the stream only while the user has not scrolled away; a forced
// scroll always jumps to the bottom and resumes following.
type ViewScrollManager struct {
	view         *tview.TextView
	animations   bool
	streaming    bool
	userScrolled bool
}

// NewViewScrollManager creates a manager for the given message view.
func NewViewScrollManager(view *tview.TextView) *ViewScrollManager {
	return &ViewScrollManager{view: view, animations: true}
}

// SmartScrollToBottom follows the stream unless the user scrolled up to read
// something.
func (s *ViewScrollManager) SmartScrollToBottom() {
	if s.userScrolled {
		return
	}
	s.view.ScrollToEnd()
}

// ForceScrollToBottom jumps to the bottom and resumes following.
func (s *ViewScrollManager) ForceScrollToBottom() {
	s.userScrolled = false
	s.view.ScrollToEnd()
}

// DisableAnimations suppresses smooth scrolling during bulk restoration.
func (s *ViewScrollManager) DisableAnimations() { s.animations = false }

// EnableAnimations restores smooth scrolling.
func (s *ViewScrollManager) EnableAnimations() { s.animations = true }

// SetActivelyStreaming records whether any stream is open; while streaming,
// user scrolls are respected rather than fought.
func (s *ViewScrollManager) SetActivelyStreaming(streaming bool) {
	s.streaming = streaming
	if !streaming {
		s.userScrolled = false
	}
}

// Offset returns the current vertical scroll position.
func (s *ViewScrollManager) Offset() int {
	row, _ := s.view.GetScrollOffset()
	return row
}

// NoteUserScroll marks that the user moved away from the bottom.
func (s *ViewScrollManager) NoteUserScroll() { s.userScrolled = true }
