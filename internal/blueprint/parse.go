package blueprint

import (
	"regexp"
	"strconv"
	"strings"
)

var lineRe = regexp.MustCompile(`^Blueprint (\d+): .* ore robot costs (\d+) ore.* clay robot costs (\d+) ore.* obsidian robot costs (\d+) ore and (\d+) clay.* geode robot costs (\d+) ore and (\d+) obsidian.$`)

// ParseLine parses a single blueprint description such as
//
//	Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. ...
func ParseLine(line string) (Blueprint, error) {
	m := lineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Blueprint{}, ErrMalformed
	}
	var n [7]int
	for i := range n {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Blueprint{}, err
		}
		n[i] = v
	}
	return New(n[0],
		Resources{n[1], 0, 0, 0},
		Resources{n[2], 0, 0, 0},
		Resources{n[3], n[4], 0, 0},
		Resources{n[5], 0, n[6], 0},
	), nil
}

// Parse reads one blueprint per non-blank line. The first bad line aborts
// parsing with a *ParseError.
func Parse(input string) ([]Blueprint, error) {
	var out []Blueprint
	for i, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		bp, err := ParseLine(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: line, Err: err}
		}
		out = append(out, bp)
	}
	if len(out) == 0 {
		return nil, ErrNoBlueprints
	}
	return out, nil
}
