package superstrict

import "strings"

// Policy selects which programs the pass rewrites.
type Policy string

const (
	// OptIn rewrites only programs carrying a "use superstrict" directive.
	OptIn Policy = "opt in"

	// OptOut rewrites every program except those carrying a
	// "use !superstrict" directive.
	OptOut Policy = "opt out"

	// Everything rewrites every program regardless of its directives.
	Everything Policy = "everything"
)

// DefaultPolicy is used when no policy is configured.
const DefaultPolicy = OptIn

// ParsePolicy converts a configured policy name to a Policy. The empty
// string yields DefaultPolicy. Hyphens and underscores are accepted in place
// of the space ("opt-in", "opt_out"); names are case-sensitive. Any other
// value is returned unchanged and behaves like Everything.
func ParsePolicy(s string) Policy {
	if strings.TrimSpace(s) == "" {
		return DefaultPolicy
	}
	normalized := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	switch p := Policy(normalized); p {
	case OptIn, OptOut, Everything:
		return p
	}
	return Policy(s)
}

// Known reports whether p is one of the defined policies.
func (p Policy) Known() bool {
	switch p {
	case OptIn, OptOut, Everything:
		return true
	}
	return false
}

func (p Policy) String() string {
	return string(p)
}

// Decide reports whether a program with the given directives is rewritten
// under policy. An unrecognized policy rewrites every program.
func Decide(policy Policy, d Directives) bool {
	if policy == "" {
		policy = DefaultPolicy
	}
	switch {
	case policy == OptIn && !d.Positive:
		return false
	case policy == OptOut && d.Negative:
		return false
	}
	return true
}
