package mesh

import "go.uber.org/atomic"

// globalTime is the process-wide modification clock. Every call to Modified advances it, so
// comparing two stamps tells which object changed last.
var globalTime = atomic.NewUint64(0)

// TimeStamp records the last time an object was modified.
type TimeStamp struct {
	value uint64
}

// Modified advances the stamp to a new, strictly later time.
func (ts *TimeStamp) Modified() {
	ts.value = globalTime.Inc()
}

// MTime returns the recorded modification time. Zero means never modified.
func (ts *TimeStamp) MTime() uint64 {
	return ts.value
}
