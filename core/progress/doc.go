// Package progress derives read-only views from a plan and its progress
// records: completion summaries, the subject to focus on next, upcoming
// deadlines and task reminders.
package progress
