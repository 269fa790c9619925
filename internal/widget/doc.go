// Package widget builds the home-screen widget timeline.
//
// A [Provider] samples random stored records into timestamped entries. It
// never fails: an empty or unreadable store yields the placeholder entry.
// [Watch] regenerates the timeline on a cron schedule.
package widget
