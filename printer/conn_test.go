package printer

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePort replays canned firmware output and records everything written.
type fakePort struct {
	io.Reader
	wrote bytes.Buffer
}

func (f *fakePort) Write(p []byte) (int, error) { return f.wrote.Write(p) }

func newFakePort(output string) *fakePort {
	return &fakePort{Reader: strings.NewReader(output)}
}

func TestConn_WriteLine(t *testing.T) {
	port := newFakePort("ok\n")
	c := NewConn(port)

	require.NoError(t, c.WriteLine("G28"))
	assert.Equal(t, "G28\n", port.wrote.String())
}

func TestConn_WriteLineChatter(t *testing.T) {
	// temperature reports before the ack are dropped
	port := newFakePort("T:204.1 /205.0\necho:busy\nok T:204.3\n")
	c := NewConn(port)

	require.NoError(t, c.WriteLine("M109 S205"))
}

func TestConn_WriteLineSkipsComments(t *testing.T) {
	port := newFakePort("ok\n")
	c := NewConn(port)

	require.NoError(t, c.WriteLine("; just a comment"))
	require.NoError(t, c.WriteLine("  "))
	require.NoError(t, c.WriteLine("G1 X5 ; outer wall"))
	assert.Equal(t, "G1 X5\n", port.wrote.String())
}

func TestConn_WriteLineError(t *testing.T) {
	port := newFakePort("Error:checksum mismatch\n")
	c := NewConn(port)

	err := c.WriteLine("G1 X5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestConn_WriteLineReset(t *testing.T) {
	port := newFakePort("start\n")
	c := NewConn(port)

	assert.Equal(t, ErrPrinterReset, c.WriteLine("G1 X5"))
}

func TestConn_ReadFrom(t *testing.T) {
	port := newFakePort("ok\nok\nok\n")
	c := NewConn(port)

	job := "G28\n;LAYER:0\nG1 X5 F1200\nG1 X10\n"
	n, err := c.ReadFrom(strings.NewReader(job))
	require.NoError(t, err)
	assert.Equal(t, int64(len(job)), n)
	assert.Equal(t, "G28\nG1 X5 F1200\nG1 X10\n", port.wrote.String())
}

func TestConn_ReadFromEOF(t *testing.T) {
	// firmware going silent mid-job surfaces as an error
	port := newFakePort("ok\n")
	c := NewConn(port)

	_, err := c.ReadFrom(strings.NewReader("G28\nG1 X5\n"))
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}
