package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	cases := []struct {
		cmd    string
		params map[byte]float64
	}{
		{cmd: "G1 X10 Y-5.5 Z0.2", params: map[byte]float64{'X': 10, 'Y': -5.5, 'Z': 0.2}},
		{cmd: "G1 E+1.25 F1200", params: map[byte]float64{'E': 1.25, 'F': 1200}},
		{cmd: "M104 S200", params: map[byte]float64{'S': 200}},
		{cmd: "G1 X.5", params: map[byte]float64{'X': 0.5}},
		// last occurrence of a repeated letter wins
		{cmd: "G1 X1 X2 X3", params: map[byte]float64{'X': 3}},
		// junk between words is ignored, not an error
		{cmd: "G1 X1 foo Y2 Q9", params: map[byte]float64{'X': 1, 'Y': 2}},
		// an axis letter with no numeral matches nothing
		{cmd: "G1 X", params: nil},
		{cmd: "M117 hello", params: nil},
	}

	for _, c := range cases {
		params, err := parseParams(c.cmd)
		require.NoError(t, err, "cmd %q", c.cmd)
		assert.Equal(t, c.params, params, "cmd %q", c.cmd)
	}
}
