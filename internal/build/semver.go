package build

import (
	"fmt"
	"strconv"
	"strings"
)

// Semver is a parsed X.Y.Z version. A leading "v" and any pre-release or
// build suffix ("-dev", "+sha") are accepted and dropped.
type Semver struct {
	Major int
	Minor int
	Patch int
}

// ParseSemver parses s (e.g. "1.2.3", "v1.2.3" or "0.0.0-dev").
func ParseSemver(s string) (Semver, error) {
	core := strings.TrimPrefix(strings.TrimSpace(s), "v")
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Semver{}, fmt.Errorf("invalid version format: %s (expected X.Y.Z)", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Semver{}, fmt.Errorf("invalid version component %q in %s", p, s)
		}
		nums[i] = n
	}
	return Semver{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Compare returns -1, 0 or 1 as v is older than, equal to or newer than other.
func (v Semver) Compare(other Semver) int {
	for _, d := range [][2]int{{v.Major, other.Major}, {v.Minor, other.Minor}, {v.Patch, other.Patch}} {
		switch {
		case d[0] < d[1]:
			return -1
		case d[0] > d[1]:
			return 1
		}
	}
	return 0
}

func (v Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsMajorVersionMismatch reports whether a and b parse with different
// major versions. Unparsable input never mismatches.
func IsMajorVersionMismatch(a, b string) bool {
	va, errA := ParseSemver(a)
	vb, errB := ParseSemver(b)
	if errA != nil || errB != nil {
		return false
	}
	return va.Major != vb.Major
}
