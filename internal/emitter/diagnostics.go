package emitter

import (
	"fmt"
	"runtime"
	"strings"
)

const maxContextFrames = 32

// callContext renders the caller's stack as indented text. Skips the frames
// inside this package so the snapshot starts at producer code.
func callContext() string {
	pcs := make([]uintptr, maxContextFrames)
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "\t%s\n\t\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}
