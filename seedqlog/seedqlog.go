// Package seedqlog is the queue core's logging surface, wrapping
// github.com/funkygao/log4go the way the teacher's cmd/kateway/hh/disk
// package does: a package-level logger plus Warn/Info/Error/Trace calls
// at state transitions (queue open, tolerated corruption, minimization
// runs). Silent drops on overflow are not logged.
package seedqlog

import (
	log "github.com/funkygao/log4go"
)

// Logger is the package-level logger every seed queue package logs
// through. Embedding applications may reassign it (e.g. to route to a
// file appender) before opening any queue.
var Logger log.Logger = log.NewDefaultLogger(log.INFO)

// SetLevel adjusts the verbosity of Logger.
func SetLevel(level log.Level) {
	Logger.SetLevel(level)
}

// Close flushes and releases Logger's appenders. Call once at shutdown,
// after the favored tiers have been saved.
func Close() {
	Logger.Close()
}
