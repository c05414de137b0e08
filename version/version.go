// Package version parses GL.iNet firmware version strings. Firmwares
// report either three parts ("4.5.16") or four ("4.5.16.25"), with an
// optional leading "v".
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var versionRE = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:\.(\d+))?$`)

// Version is a parsed firmware version. Build is 0 for three-part
// versions.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
	Build int `json:"build"`
}

// Parse reads a three- or four-part version string. Leading "v"
// characters are stripped first.
func Parse(s string) (Version, error) {
	trimmed := strings.TrimLeft(s, "v")
	match := versionRE.FindStringSubmatch(trimmed)
	if match == nil {
		return Version{}, fmt.Errorf("invalid version string %q", s)
	}

	parts := make([]int, 4)
	for i, group := range match[1:] {
		if group == "" {
			continue
		}
		n, err := strconv.Atoi(group)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version string %q: %v", s, err)
		}
		parts[i] = n
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2], Build: parts[3]}, nil
}

// MustParse is Parse for version strings known to be valid.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare orders two versions part by part. It returns -1 when v is
// older than o, 0 when equal and 1 when newer.
func (v Version) Compare(o Version) int {
	left := [4]int{v.Major, v.Minor, v.Patch, v.Build}
	right := [4]int{o.Major, o.Minor, o.Patch, o.Build}
	for i := range left {
		switch {
		case left[i] < right[i]:
			return -1
		case left[i] > right[i]:
			return 1
		}
	}
	return 0
}

// Less reports whether v is older than o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// String renders the version, omitting a zero build.
func (v Version) String() string {
	if v.Build == 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Build)
}
