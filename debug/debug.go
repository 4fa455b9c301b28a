// Package debug carries the assertion helpers used for internal invariants
// and for reporting caller contract violations.
package debug

import (
	"fmt"
	"log"
)

// Assert panics if cond is false. It guards invariants that only a bug in
// this module can break.
func Assert(cond bool) {
	if !cond {
		panic("assertion failed")
	}
}

func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// OnViolation receives reports of caller contract violations. The default
// logs the report. Tests replace it to observe violations; callers that
// report through Violation treat the offending call as a no-op afterwards.
var OnViolation = func(msg string) {
	log.Println("contract violation:", msg)
}

// Violation reports a precondition failure caused by the caller, as opposed
// to an internal bug. It must not panic; the component that reports it stays
// usable.
func Violation(format string, args ...any) {
	if OnViolation != nil {
		OnViolation(fmt.Sprintf(format, args...))
	}
}
