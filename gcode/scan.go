package gcode

import (
	"strings"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineAnnotation
	lineCommand
)

// scanLine classifies one raw line and returns the text relevant to its
// class: the whole line for annotations, the command with any inline
// comment stripped, and "" for blank lines. No command validation happens
// here.
func scanLine(raw string) (lineKind, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return lineBlank, ""
	}
	if strings.HasPrefix(s, ";") {
		return lineAnnotation, s
	}

	s = strings.TrimSpace(strings.SplitN(s, ";", 2)[0])
	if s == "" {
		return lineBlank, ""
	}
	return lineCommand, s
}
