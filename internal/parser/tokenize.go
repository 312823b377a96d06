package parser

import (
	"strings"
)

// Field prefixes.
const (
	prefixName    = "n/"
	prefixPhone   = "p/"
	prefixEmail   = "e/"
	prefixAddress = "a/"
	prefixTag     = "t/"
)

var prefixes = []string{prefixName, prefixPhone, prefixEmail, prefixAddress, prefixTag}

// argFields is tokenised argument text: the preamble before the first
// prefix, and every value given for each prefix in order of appearance.
type argFields struct {
	preamble string
	values   map[string][]string
}

// tags returns the non-empty t/ values. A lone empty "t/" yields no tags,
// which lets edit clear them.
func (f argFields) tags() []string {
	var out []string
	for _, t := range f.values[prefixTag] {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

type prefixAt struct {
	prefix string
	pos    int
}

func tokenize(args string) argFields {
	var found []prefixAt
	for i := 0; i < len(args); i++ {
		if i > 0 && args[i-1] != ' ' && args[i-1] != '\t' {
			continue
		}
		for _, p := range prefixes {
			if strings.HasPrefix(args[i:], p) {
				found = append(found, prefixAt{prefix: p, pos: i})
				break
			}
		}
	}

	out := argFields{values: make(map[string][]string)}
	if len(found) == 0 {
		out.preamble = strings.TrimSpace(args)
		return out
	}
	out.preamble = strings.TrimSpace(args[:found[0].pos])
	for i, f := range found {
		end := len(args)
		if i+1 < len(found) {
			end = found[i+1].pos
		}
		value := strings.TrimSpace(args[f.pos+len(f.prefix) : end])
		out.values[f.prefix] = append(out.values[f.prefix], value)
	}
	return out
}
