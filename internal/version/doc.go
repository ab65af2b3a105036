// Package version parses semantic-version range expressions and evaluates
// them against release tags.
//
// Release tags are not always strict semantic versions ("4.12", "4"), so
// every tag is coerced to a three-part version before it is compared:
//
//	v, err := version.Coerce("4.12") // 4.12.0
//
// Constraints use a comparator-and-wildcard grammar:
//
//	c, err := version.Parse(">=4.12,<4.13")
//	if err != nil {
//	    var invalid *version.InvalidConstraintError
//	    errors.As(err, &invalid) // true
//	}
//	c.Matches("4.12.1") // true
//
// A comma inside one expression is a logical AND. Several expressions are
// combined with a logical OR by MatchesAny:
//
//	cs, _ := version.ParseAll([]string{"==4.11.1", "==4.10.1"})
//	version.MatchesAny(cs, "4.10.1") // true
package version
