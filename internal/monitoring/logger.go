// Package monitoring holds the diagnostic logger shared by every package.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or the CLI's -quiet flag mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Scoped returns a logger that prefixes messages with "[scope] " and writes
// through whatever Logf is current at call time.
func Scoped(scope string) func(format string, v ...interface{}) {
	prefix := "[" + scope + "] "
	return func(format string, v ...interface{}) {
		Logf(prefix+format, v...)
	}
}
