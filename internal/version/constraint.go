package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// equalityOp matches "==" in comparator position at the start of a clause.
var equalityOp = regexp.MustCompile(`(^|[,\s|])==`)

// InvalidConstraintError is returned when a version range expression cannot be parsed.
type InvalidConstraintError struct {
	Text string
	Err  error
}

func (e *InvalidConstraintError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid version constraint %q", e.Text)
	}
	return fmt.Sprintf("invalid version constraint %q: %v", e.Text, e.Err)
}

func (e *InvalidConstraintError) Unwrap() error {
	return e.Err
}

// Constraint is a parsed semantic-version range expression.
//
// Supported syntax:
//   - comparators: ==, =, !=, >, >=, <, <=, ~, ^
//   - conjunctions: comma or whitespace separated, e.g. ">=4.12,<4.13"
//   - wildcards: "4.12.*", "4.*", "*"
//   - bare versions mean equality: "4.11.1" is the same as "==4.11.1"
//   - tags with a suffix ("4.13.0-rc1") match by their version like any other
//
// Example:
//
//	c, err := Parse(">=4.12,<4.13")
//	if err != nil {
//	    return err
//	}
//	c.Matches("4.12.1") // true
//	c.Matches("4.13")   // false
type Constraint struct {
	text        string
	constraints *semver.Constraints
}

// Parse parses a version range expression.
//
// Returns an *InvalidConstraintError if the expression is empty or malformed.
func Parse(text string) (*Constraint, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &InvalidConstraintError{Text: text, Err: fmt.Errorf("empty expression")}
	}

	c, err := semver.NewConstraint(equalityOp.ReplaceAllString(trimmed, "${1}="))
	if err != nil {
		return nil, &InvalidConstraintError{Text: text, Err: err}
	}
	// Tags such as "4.13.0-rc1" are ordinary releases of the catalog and
	// compare by version like any other tag.
	c.IncludePrerelease = true

	return &Constraint{text: trimmed, constraints: c}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(text string) *Constraint {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseAll parses every expression, stopping at the first invalid one.
func ParseAll(texts []string) ([]*Constraint, error) {
	out := make([]*Constraint, 0, len(texts))
	for _, text := range texts {
		c, err := Parse(text)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Matches reports whether the coerced tag satisfies the constraint.
// Tags that cannot be coerced never match.
func (c *Constraint) Matches(tag string) bool {
	v, err := Coerce(tag)
	if err != nil {
		return false
	}
	return c.Check(v)
}

// Check reports whether v satisfies the constraint.
func (c *Constraint) Check(v *Version) bool {
	return c.constraints.Check(v)
}

// String returns the expression the constraint was parsed from.
func (c *Constraint) String() string {
	return c.text
}

// MatchesAny reports whether tag satisfies at least one of the constraints.
func MatchesAny(constraints []*Constraint, tag string) bool {
	v, err := Coerce(tag)
	if err != nil {
		return false
	}
	for _, c := range constraints {
		if c.Check(v) {
			return true
		}
	}
	return false
}

// Strings returns the source expressions of the constraints.
func Strings(constraints []*Constraint) []string {
	out := make([]string, len(constraints))
	for i, c := range constraints {
		out[i] = c.String()
	}
	return out
}
