package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Overlay is a modal shown above the current screen.
type Overlay struct {
	View View
	Kind string // identifies the modal, e.g. overlayScheduler
}

// Overlay kinds.
const (
	overlayScheduler = "scheduler"
	overlaySearch    = "search"
	overlayConfirm   = "confirm"
	overlayActivity  = "activity"
)

// OverlayStack manages a stack of overlays (topmost receives input first).
type OverlayStack struct {
	Stack []Overlay
}

// Push adds an overlay to the top of the stack.
func (s *OverlayStack) Push(o Overlay) {
	s.Stack = append(s.Stack, o)
}

// Pop removes and returns the top overlay.
func (s *OverlayStack) Pop() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of overlays in the stack.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// Has reports whether an overlay of kind is anywhere on the stack.
func (s *OverlayStack) Has(kind string) bool {
	for _, o := range s.Stack {
		if o.Kind == kind {
			return true
		}
	}
	return false
}

// Remove drops every overlay of kind, wherever it sits.
func (s *OverlayStack) Remove(kind string) {
	kept := s.Stack[:0]
	for _, o := range s.Stack {
		if o.Kind != kind {
			kept = append(kept, o)
		}
	}
	s.Stack = kept
}

// UpdateTop passes msg to the top overlay's Update and replaces its View with the result.
// Returns the cmd from the overlay's Update. Caller must run the cmd.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := &s.Stack[len(s.Stack)-1]
	newView, cmd := top.View.Update(msg)
	top.View = newView
	return cmd, true
}

// Render draws the top overlay centered in a width x height area, or
// returns base unchanged when the stack is empty.
func (s *OverlayStack) Render(base string, width, height int) string {
	top, ok := s.Peek()
	if !ok {
		return base
	}
	if width <= 0 || height <= 0 {
		return base + "\n" + top.View.View()
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, top.View.View())
}
