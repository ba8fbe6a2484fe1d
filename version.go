package docdex

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// versionRe matches a three-part numeric version such as "2.0.71".
var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Version is a three-part numeric release version. Versions are compared by
// numeric triple, not lexically, so 2.0.9 sorts before 2.0.71.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a "x.y.z" version string.
func ParseVersion(s string) (Version, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, Errorf(EINVALID, "invalid version %q: expected x.y.z", s)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// String returns the canonical "x.y.z" form.
func (v Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
}

// Compare returns -1, 0, or 1 depending on whether v is less than, equal to,
// or greater than other.
func (v Version) Compare(other Version) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	return compareInt(v.Patch, other.Patch)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SortVersions sorts version strings ascending by numeric triple, ignoring
// entries that do not parse. The returned slice contains only valid versions.
func SortVersions(in []string) []string {
	versions := make([]Version, 0, len(in))
	for _, s := range in {
		v, err := ParseVersion(strings.TrimSpace(s))
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) < 0
	})
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.String()
	}
	return out
}
