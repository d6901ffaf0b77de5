// this code is from https://github.com/ryogrid/SamehadaDB
// there is license and copyright notice in licenses/go-bustub dir

package common

import "fmt"

// LogLevel is a bitmask flag, not an ordered severity: ActiveLogKindSetting
// is the OR of every level a caller wants to see.
type LogLevel int32

const (
	DebugInfoDetail LogLevel = 1 << iota
	DebugInfo
	Debugging
	INFO
	WARN
	ERROR
	FATAL
)

// ShPrintf writes fmtStr to stdout iff logLevel intersects
// ActiveLogKindSetting. There is no leveled logger object to construct or
// inject: every call site names its own level, matching the teacher's flat
// debug-print style.
func ShPrintf(logLevel LogLevel, fmtStr string, a ...interface{}) {
	if logLevel&ActiveLogKindSetting > 0 {
		fmt.Printf(fmtStr, a...)
	}
}
