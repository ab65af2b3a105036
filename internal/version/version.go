package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a parsed semantic version.
type Version = semver.Version

// ErrNotCoercible is returned by Coerce when a tag carries no leading version number.
var ErrNotCoercible = errors.New("version: tag cannot be coerced to a version")

var (
	coerceRegex     = regexp.MustCompile(`^[vV]?(\d+)(?:\.(\d+))?(?:\.(\d+))?(.*)$`)
	invalidIdentRun = regexp.MustCompile(`[^0-9A-Za-z-]+`)
)

// Coerce converts a release tag into a three-part semantic version.
//
// Coercion is tolerant of partial tags:
//   - "4" becomes 4.0.0, "4.12" becomes 4.12.0
//   - a leading "v" is dropped
//   - "-rc1" style suffixes become the prerelease
//   - "+build" suffixes, and any other trailing text such as the ".2" of
//     "4.12.1.2", become build metadata
//
// Characters that are not allowed in semver identifiers are replaced with
// dashes. Tags that do not start with a number return ErrNotCoercible.
//
// Example:
//
//	v, _ := Coerce("4.12")
//	fmt.Println(v) // 4.12.0
func Coerce(tag string) (*Version, error) {
	m := coerceRegex.FindStringSubmatch(strings.TrimSpace(tag))
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotCoercible, tag)
	}

	var parts [3]uint64
	for i := 0; i < 3; i++ {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrNotCoercible, tag, err)
		}
		parts[i] = n
	}

	pre, meta := splitRest(m[4])
	core := fmt.Sprintf("%d.%d.%d", parts[0], parts[1], parts[2])

	full := core
	if pre != "" {
		full += "-" + pre
	}
	if meta != "" {
		full += "+" + meta
	}

	v, err := semver.StrictNewVersion(full)
	if err == nil {
		return v, nil
	}

	// Numeric prerelease identifiers with leading zeros are rejected by
	// strict parsing; drop the extras rather than failing the tag.
	v, err = semver.StrictNewVersion(core)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrNotCoercible, tag, err)
	}
	return v, nil
}

// splitRest turns the text after the numeric core into prerelease and metadata.
func splitRest(rest string) (pre, meta string) {
	if rest == "" {
		return "", ""
	}

	if strings.HasPrefix(rest, "-") {
		rest = rest[1:]
		if i := strings.IndexByte(rest, '+'); i >= 0 {
			return cleanIdentifiers(rest[:i]), cleanIdentifiers(rest[i+1:])
		}
		return cleanIdentifiers(rest), ""
	}

	return "", cleanIdentifiers(strings.TrimPrefix(rest, "+"))
}

// cleanIdentifiers normalises dot-separated identifiers, dropping empty ones.
func cleanIdentifiers(s string) string {
	var out []string
	for _, ident := range strings.Split(s, ".") {
		ident = strings.Trim(invalidIdentRun.ReplaceAllString(ident, "-"), "-")
		if ident != "" {
			out = append(out, ident)
		}
	}
	return strings.Join(out, ".")
}
