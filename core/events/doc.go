// Package events defines the study plan events emitted on the event bus.
//
// Available event types:
//   - PlanEvent: a plan was generated or rebalanced and stored
//   - ProgressEvent: a session was marked complete or incomplete
package events
