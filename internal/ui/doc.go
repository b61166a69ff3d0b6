// Package ui is the Bubble Tea front end of the review panel.
//
// Core abstractions:
//   - View: A screen or modal with its own model, update, view (Elm-style)
//   - AppModel: Switches between the applicant list and the detail screen
//   - OverlayStack: Modals (scheduler, search, confirm, activity) on top
//   - KeyHandler: SPC-leader and per-mode single-key bindings
//
// All review state lives in a review.Panel owned by the AppModel. Store calls
// run as tea.Cmds and report back as messages.
package ui
