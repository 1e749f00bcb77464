package router

import (
	"net/url"
	"strings"

	"github.com/oversys/Rusty-Words/internal/errors"
	"github.com/oversys/Rusty-Words/pkg/routepath"
)

type segmentKind int

const (
	segmentStatic segmentKind = iota
	segmentParam
	segmentCatchAll
)

// patternSegment is one compiled segment of a route pattern.
type patternSegment struct {
	kind segmentKind

	// value is the literal for static segments, the parameter name otherwise
	value string
}

// pattern is a compiled route pattern.
type pattern struct {
	raw      string
	segments []patternSegment
}

// catchAll reports whether the pattern ends in a wildcard.
func (p *pattern) catchAll() bool {
	n := len(p.segments)
	return n > 0 && p.segments[n-1].kind == segmentCatchAll
}

// compilePattern parses a route pattern.
// Input: "/word/:wordId" → [static "word", param "wordId"]
func compilePattern(raw string) (*pattern, error) {
	if !strings.HasPrefix(raw, "/") {
		return nil, errors.New("E200").
			WithDetailf("pattern %q must start with /", raw)
	}

	p := &pattern{raw: raw}
	seen := make(map[string]bool)
	parts := routepath.SplitPath(raw)

	for i, seg := range parts {
		switch {
		case strings.HasPrefix(seg, "*"):
			if i != len(parts)-1 {
				return nil, errors.New("E201").
					WithDetailf("wildcard in %q must be the last segment", raw)
			}
			name := seg[1:]
			if name != "" {
				if seen[name] {
					return nil, errors.New("E202").WithDetailf("%q in %q", name, raw)
				}
				seen[name] = true
			}
			p.segments = append(p.segments, patternSegment{kind: segmentCatchAll, value: name})

		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if name == "" {
				return nil, errors.New("E200").
					WithDetailf("unnamed parameter in %q", raw)
			}
			if seen[name] {
				return nil, errors.New("E202").WithDetailf("%q in %q", name, raw)
			}
			seen[name] = true
			p.segments = append(p.segments, patternSegment{kind: segmentParam, value: name})

		case seg == "":
			return nil, errors.New("E200").
				WithDetailf("empty segment in %q", raw)

		default:
			p.segments = append(p.segments, patternSegment{kind: segmentStatic, value: seg})
		}
	}

	return p, nil
}

// match matches path segments against the pattern and returns the
// captured parameters.
func (p *pattern) match(segments []string) (map[string]string, bool) {
	params := make(map[string]string)

	for i, ps := range p.segments {
		if ps.kind == segmentCatchAll {
			// Catch-all consumes the rest of the path, including nothing.
			if ps.value != "" {
				params[ps.value] = strings.Join(segments[min(i, len(segments)):], "/")
			}
			return params, true
		}

		if i >= len(segments) {
			return nil, false
		}
		seg := segments[i]

		switch ps.kind {
		case segmentStatic:
			if seg != ps.value {
				return nil, false
			}
		case segmentParam:
			if seg == "" {
				return nil, false
			}
			value, err := routepath.DecodeSegment(seg)
			if err != nil {
				return nil, false
			}
			params[ps.value] = value
		}
	}

	if len(segments) != len(p.segments) {
		return nil, false
	}
	return params, true
}

// build fills the pattern's parameters to produce a concrete path.
func (p *pattern) build(params map[string]string) (string, error) {
	var b strings.Builder

	for _, ps := range p.segments {
		switch ps.kind {
		case segmentStatic:
			b.WriteString("/")
			b.WriteString(ps.value)
		case segmentParam:
			value := params[ps.value]
			if value == "" {
				return "", errors.New("E203").
					WithDetailf("%q requires parameter %q", p.raw, ps.value)
			}
			b.WriteString("/")
			b.WriteString(url.PathEscape(value))
		case segmentCatchAll:
			if rest := params[ps.value]; ps.value != "" && rest != "" {
				b.WriteString("/")
				b.WriteString(rest)
			}
		}
	}

	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}
