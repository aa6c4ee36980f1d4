package registry

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MatchVersion reports whether version satisfies constraint. The constraint is
// either empty (any version), an OSGi range such as [1.0,2.0) or a plain version,
// which must match exactly. Versions semver cannot read are compared as strings.
func MatchVersion(version, constraint string) bool {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return true
	}

	v, err := parseVersion(version)
	if err != nil {
		return version == constraint
	}

	if isRange(constraint) {
		c, err := rangeConstraint(constraint)
		if err != nil {
			return false
		}
		// qualifiers sort above the release in OSGi, so ranges check the release
		release, _ := v.SetPrerelease("")
		return c.Check(&release)
	}

	want, err := parseVersion(constraint)
	if err != nil {
		return version == constraint
	}
	return v.Equal(want)
}

func isRange(constraint string) bool {
	return strings.HasPrefix(constraint, "[") || strings.HasPrefix(constraint, "(")
}

// rangeConstraint converts an OSGi version range into a semver constraint
func rangeConstraint(r string) (*semver.Constraints, error) {
	if len(r) < 2 {
		return nil, fmt.Errorf("invalid version range %q", r)
	}
	open, closing := r[0], r[len(r)-1]
	if closing != ']' && closing != ')' {
		return nil, fmt.Errorf("invalid version range %q", r)
	}

	bounds := strings.Split(r[1:len(r)-1], ",")
	if len(bounds) != 2 {
		return nil, fmt.Errorf("invalid version range %q", r)
	}

	var parts []string
	if low := strings.TrimSpace(bounds[0]); low != "" {
		v, err := parseVersion(low)
		if err != nil {
			return nil, err
		}
		op := ">="
		if open == '(' {
			op = ">"
		}
		parts = append(parts, op+" "+v.String())
	}
	if high := strings.TrimSpace(bounds[1]); high != "" {
		v, err := parseVersion(high)
		if err != nil {
			return nil, err
		}
		op := "<="
		if closing == ')' {
			op = "<"
		}
		parts = append(parts, op+" "+v.String())
	}
	if len(parts) == 0 {
		return semver.NewConstraint("*")
	}
	return semver.NewConstraint(strings.Join(parts, ", "))
}

// parseVersion reads maven and OSGi versions. The OSGi qualifier in 1.2.3.q
// becomes the semver prerelease 1.2.3-q.
func parseVersion(raw string) (*semver.Version, error) {
	raw = strings.TrimSpace(raw)
	segments := strings.SplitN(raw, ".", 4)
	if len(segments) == 4 && !strings.Contains(segments[2], "-") {
		raw = strings.Join(segments[:3], ".") + "-" + segments[3]
	}
	return semver.NewVersion(raw)
}
