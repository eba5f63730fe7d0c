// Package monitoring holds the package-level loggers shared by the kmeans tool.
package monitoring

import "log"

// Logf is the diagnostic logger for warnings and run events. It defaults to
// log.Printf and may be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf receives per-round tracing from the clustering engine. It is a no-op
// until SetDebug(true) routes it to Logf.
var Debugf func(format string, v ...interface{}) = noop

func noop(string, ...interface{}) {}

// SetLogger replaces Logf. Passing nil mutes it. If debug output is enabled it
// follows the new logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		f = noop
	}
	debugOn := debugEnabled
	Logf = f
	SetDebug(debugOn)
}

var debugEnabled bool

// SetDebug turns round-by-round tracing on or off.
func SetDebug(on bool) {
	debugEnabled = on
	if !on {
		Debugf = noop
		return
	}
	Debugf = func(format string, v ...interface{}) { Logf(format, v...) }
}
