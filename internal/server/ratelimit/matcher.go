package ratelimit

import (
	"fmt"
	"strings"
)

// route is a parsed Rule pattern.
type route struct {
	method   string
	segments []string
	prefix   bool
}

func parsePattern(pattern string) (route, error) {
	method, path, ok := strings.Cut(strings.TrimSpace(pattern), " ")
	path = strings.TrimSpace(path)
	if !ok || method == "" || !strings.HasPrefix(path, "/") {
		return route{}, fmt.Errorf("invalid rate limit pattern %q: want \"METHOD /path\"", pattern)
	}

	r := route{method: strings.ToUpper(method)}
	if strings.HasSuffix(path, "/") {
		r.prefix = true
	}
	r.segments = splitPath(path)
	for _, seg := range r.segments {
		if strings.HasPrefix(seg, "{") != strings.HasSuffix(seg, "}") {
			return route{}, fmt.Errorf("invalid rate limit pattern %q: malformed wildcard %q", pattern, seg)
		}
	}
	return r, nil
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func isWildcard(seg string) bool {
	return strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")
}

func (r route) match(method string, segments []string) bool {
	if r.method != method || len(segments) < len(r.segments) {
		return false
	}
	if !r.prefix && len(segments) != len(r.segments) {
		return false
	}
	for i, seg := range r.segments {
		if isWildcard(seg) {
			if segments[i] == "" {
				return false
			}
			continue
		}
		if seg != segments[i] {
			return false
		}
	}
	return true
}

type compiledRule struct {
	Rule
	route route
}

// matcher resolves a request to the first rule whose pattern matches, in configuration order.
type matcher struct {
	rules  []compiledRule
	exempt []route
}

func newMatcher(cfg *Config) (*matcher, error) {
	m := &matcher{}
	for _, rule := range cfg.Rules {
		r, err := parsePattern(rule.Pattern)
		if err != nil {
			return nil, err
		}
		m.rules = append(m.rules, compiledRule{Rule: rule, route: r})
	}
	for _, pattern := range cfg.Exempt {
		r, err := parsePattern(pattern)
		if err != nil {
			return nil, err
		}
		m.exempt = append(m.exempt, r)
	}
	return m, nil
}

// lookup returns the rule for a request. ok is false when no rule matches; exempt is true
// when the request must not be limited at all.
func (m *matcher) lookup(method, path string) (rule Rule, ok, exempt bool) {
	segments := splitPath(path)
	for _, r := range m.exempt {
		if r.match(method, segments) {
			return Rule{}, false, true
		}
	}
	for _, r := range m.rules {
		if r.route.match(method, segments) {
			return r.Rule, true, false
		}
	}
	return Rule{}, false, false
}
