// Package output renders the fixture character stream.
//
// Every byte the runner produces goes through a single Sink, one character
// per call. Nothing is buffered and nothing is formatted beyond literal
// strings and decimal numbers, so the stream can be pointed at a serial
// line, a ring buffer or a test recorder without changing the runner.
package output

import "io"

// Sink accepts one character at a time.
type Sink interface {
	PutChar(c byte)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(c byte)

// PutChar implements Sink.
func (f SinkFunc) PutChar(c byte) {
	f(c)
}

// Discard is a Sink that drops every character.
var Discard Sink = SinkFunc(func(byte) {})

// writerSink writes each character to an io.Writer as its own one-byte write.
type writerSink struct {
	w   io.Writer
	buf [1]byte
}

// WriterSink returns a Sink that forwards each character to w.
// Write errors are dropped: the stream has no error channel.
func WriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) PutChar(c byte) {
	s.buf[0] = c
	_, _ = s.w.Write(s.buf[:])
}

// DefaultEOL is the end-of-line sequence used when none is configured.
const DefaultEOL = "\n"

// Printer renders strings and numbers onto a Sink.
type Printer struct {
	sink Sink
	eol  string
}

// NewPrinter creates a Printer. A nil sink discards output and an empty eol
// selects DefaultEOL.
func NewPrinter(sink Sink, eol string) *Printer {
	if sink == nil {
		sink = Discard
	}
	if eol == "" {
		eol = DefaultEOL
	}
	return &Printer{sink: sink, eol: eol}
}

// Char emits c unmodified.
func (p *Printer) Char(c byte) {
	p.sink.PutChar(c)
}

// Print emits s character by character. Printable ASCII passes through;
// carriage return and newline are shown as \r and \n, and any other byte
// as \xNN, so a test name can never break the line structure of the stream.
func (p *Printer) Print(s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 32 && c <= 126:
			p.sink.PutChar(c)
		case c == '\r':
			p.sink.PutChar('\\')
			p.sink.PutChar('r')
		case c == '\n':
			p.sink.PutChar('\\')
			p.sink.PutChar('n')
		default:
			p.sink.PutChar('\\')
			p.sink.PutChar('x')
			p.hexByte(c)
		}
	}
}

// EOL emits the configured end-of-line sequence verbatim.
func (p *Printer) EOL() {
	for i := 0; i < len(p.eol); i++ {
		p.sink.PutChar(p.eol[i])
	}
}

// Unsigned emits n in decimal.
func (p *Printer) Unsigned(n uint64) {
	divisor := uint64(1)
	for n/divisor >= 10 {
		divisor *= 10
	}
	for divisor > 0 {
		p.sink.PutChar(byte('0' + (n/divisor)%10))
		divisor /= 10
	}
}

// Number emits n in decimal with a leading '-' when negative.
func (p *Printer) Number(n int64) {
	if n < 0 {
		p.sink.PutChar('-')
		// two's complement keeps math.MinInt64 correct
		p.Unsigned(uint64(^n) + 1)
		return
	}
	p.Unsigned(uint64(n))
}

const hexDigits = "0123456789ABCDEF"

func (p *Printer) hexByte(c byte) {
	p.sink.PutChar(hexDigits[c>>4])
	p.sink.PutChar(hexDigits[c&0x0f])
}
