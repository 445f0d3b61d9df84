package testutil

import "strings"

// Recorder is an output.Sink that keeps every character it receives.
type Recorder struct {
	sb    strings.Builder
	calls int
}

// PutChar records c.
func (r *Recorder) PutChar(c byte) {
	r.calls++
	r.sb.WriteByte(c)
}

// String returns everything recorded so far.
func (r *Recorder) String() string {
	return r.sb.String()
}

// Bytes returns everything recorded so far.
func (r *Recorder) Bytes() []byte {
	return []byte(r.sb.String())
}

// Calls returns the number of PutChar calls, which always equals the
// number of recorded bytes.
func (r *Recorder) Calls() int {
	return r.calls
}

// Reset discards the recording.
func (r *Recorder) Reset() {
	r.sb.Reset()
	r.calls = 0
}
