package step

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a three-component semantic version. golang.org/x/mod/semver
// only operates on "v"-prefixed strings and exposes no integer
// accessors, so Version keeps the parsed components around for display
// and for the "MAJOR.MINOR.PATCH" text the engine writes to and reads
// from __version__, while delegating ordering to semver.Compare.
type Version struct {
	Major, Minor, Patch int
}

// Zero is the sentinel version installed before any step has run.
var Zero = Version{}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// semverString renders v as the "vMAJOR.MINOR.PATCH" form semver.Compare
// requires.
func (v Version) semverString() string {
	return "v" + v.String()
}

// ParseVersion parses a "MAJOR.MINOR.PATCH" string.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("step: invalid version %q: want MAJOR.MINOR.PATCH", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("step: invalid version %q: %w", s, err)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater
// than b, using semver precedence.
func Compare(a, b Version) int {
	return semver.Compare(a.semverString(), b.semverString())
}

// Max returns the greater of a and b.
func Max(a, b Version) Version {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}
