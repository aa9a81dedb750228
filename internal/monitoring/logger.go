// Package monitoring holds the service diagnostics: the request and cache
// log hook, and the Prometheus metrics.
package monitoring

import "log"

// Logf receives request, cache and export diagnostics. It is log.Printf
// unless replaced with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger redirects Logf. nil mutes it.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
