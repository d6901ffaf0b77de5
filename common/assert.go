// this code is adapted from https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

package common

import (
	"fmt"

	"github.com/devlights/gomy/output"
)

// SHAssert panics with msg when condition is false. Used at internal
// invariant checkpoints (pin-count bookkeeping, page-table membership),
// never at the API boundary — API-level failures are return values.
func SHAssert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

// DumpLines writes each line to stdout through gomy's line-buffered
// output writer, tagged with a caller-supplied label. Used by
// BufferPoolManager.DumpState for interactive debugging.
func DumpLines(label string, lines []string) {
	for _, line := range lines {
		output.Stdoutl(fmt.Sprintf("[%s] ", label), line)
	}
}
