package events

import "fieldassign/core/model"

// WindowEvent is published after a window's assignments are finalized.
type WindowEvent struct {
	RunID      string
	Ordinal    int
	Window     model.Window
	Assigned   int
	Unassigned int
}

// ConflictEvent is emitted when a representative holding several candidate
// assignments in one window is resolved to the cheapest one.
type ConflictEvent struct {
	RunID          string
	Ordinal        int
	Representative string
	KeptCustomer   string
	Displaced      []string
}

// UnassignedEvent is published for each appointment left without a
// representative after conflict resolution.
type UnassignedEvent struct {
	RunID      string
	Ordinal    int
	CustomerID string
	Location   string
	Reason     string
}

// RosterEditEvent is published after the roster editor ran for a window.
type RosterEditEvent struct {
	RunID   string
	Ordinal int
	Before  int
	After   int
}
