// Package reminder implements the reminder delivery pipeline: a scanner
// that finds tasks whose reminder falls inside the upcoming window and
// emails their owners, and a scheduler that runs the scanner on a fixed
// cadence without overlapping runs.
//
// Delivery is send-then-mark: the email goes out first and the task's
// reminder-sent flag is persisted after. A crash between the two steps
// causes a duplicate email on the next scan, never a silently lost one.
package reminder
