// Package scheduler turns a list of subjects into a week of time-boxed study
// sessions and rebuilds that week from recorded progress.
//
// Generation is a greedy single pass: subjects are ordered by priority then
// deadline and each is exhausted before the next one starts, packing sessions
// into the daily capacity with breaks in between. Both Generate and Rebalance
// are pure; they never touch storage and are safe for concurrent use.
package scheduler
