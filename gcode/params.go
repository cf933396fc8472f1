package gcode

import (
	"regexp"
	"strconv"
)

var rxParam = regexp.MustCompile(`([XYZEFS])([-+]?[0-9]*\.?[0-9]+)`)

// parseParams scans a command for axis words: an axis letter immediately
// followed by a signed, optionally fractional decimal. Later occurrences of
// the same letter overwrite earlier ones; anything else on the line is
// ignored.
func parseParams(command string) (map[byte]float64, error) {
	matches := rxParam.FindAllStringSubmatch(command, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	params := make(map[byte]float64, len(matches))
	for _, m := range matches {
		val, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, err
		}
		params[m[1][0]] = val
	}
	return params, nil
}
