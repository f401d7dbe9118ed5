// Package events defines the reminder delivery event model and the emitter
// used to publish those events to registered handlers. The reminder scanner
// reports every per-task outcome through this interface instead of writing
// to a side channel, so operational handlers and tests observe the same
// stream.
package events
