// Package events defines the assignment related events emitted on the event bus.
//
// Available event types:
//   - RunStartedEvent: an assignment run began
//   - WindowEvent: a window finished matching
//   - ConflictEvent: a double-booked representative was resolved
//   - UnassignedEvent: an appointment could not be matched
//   - RosterEditEvent: the roster was edited between windows
package events
