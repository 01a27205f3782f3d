package util

import "github.com/hauke96/sigolo/v2"

// LogFatalBug terminates the process for states the geohash core can never reach with validated input.
func LogFatalBug(format string, args ...interface{}) {
	sigolo.Fatalb(1, format+" - This is a bug, please report it together with the input that caused it", args...)
}
