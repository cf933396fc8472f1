// Package printer streams toolpath commands to printer firmware over a
// serial line, one command per firmware acknowledgement.
package printer

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrPrinterReset is returned from write methods if the firmware restarts
// before all commands are acknowledged.
var ErrPrinterReset = errors.New("printer: firmware reset")

// Conn represents a direct connection to printer firmware. Writes block
// until the firmware acknowledges each line with "ok".
type Conn struct {
	rw   io.ReadWriter
	scan *bufio.Scanner

	mx sync.Mutex
}

// NewConn creates a new Conn using the provided ReadWriter for data.
func NewConn(rw io.ReadWriter) *Conn {
	return &Conn{
		rw:   rw,
		scan: bufio.NewScanner(rw),
	}
}

// Close will close the underlying ReadWriter, if it implements io.Closer.
func (c *Conn) Close() error {
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// ack consumes firmware output until an acknowledgement is read.
// Temperature reports, echo lines, and other chatter are dropped.
func (c *Conn) ack() error {
	for c.scan.Scan() {
		line := strings.TrimSpace(c.scan.Text())
		switch {
		case line == "ok" || strings.HasPrefix(line, "ok "):
			return nil
		case strings.HasPrefix(line, "Error:") || strings.HasPrefix(line, "error:"):
			return errors.New("printer: " + line)
		case line == "start":
			return ErrPrinterReset
		}
	}
	if err := c.scan.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}

// WriteLine sends a single command line and waits for the firmware to
// acknowledge it. Blank lines and comment-only lines are dropped without a
// write, since the firmware will not acknowledge them.
func (c *Conn) WriteLine(line string) error {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.writeLine(line)
}

func (c *Conn) writeLine(line string) error {
	line = strings.TrimSpace(strings.SplitN(line, ";", 2)[0])
	if line == "" {
		return nil
	}

	_, err := io.WriteString(c.rw, line+"\n")
	if err != nil {
		return err
	}
	return c.ack()
}

// ReadFrom streams every line of r to the printer and returns after all of
// them have been acknowledged. n counts the bytes consumed from r.
func (c *Conn) ReadFrom(r io.Reader) (n int64, err error) {
	c.mx.Lock()
	defer c.mx.Unlock()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		n += int64(len(scanner.Bytes())) + 1
		err = c.writeLine(scanner.Text())
		if err != nil {
			return n, err
		}
	}
	return n, scanner.Err()
}
