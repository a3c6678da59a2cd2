// Package model holds the data types shared by the scheduler, the stores and
// the API: subjects, schedule settings, plans with their sessions, progress
// records and tasks.
package model
