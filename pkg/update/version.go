package update

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// canonical returns v with a "v" prefix if it is a full semantic version.
// Shorthand such as "1.2" is rejected; build metadata is allowed.
func canonical(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	core, _, _ := strings.Cut(v, "+")
	if !semver.IsValid(v) || semver.Canonical(v) != core {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, v)
	}
	return v, nil
}

// Newer reports whether latest is a higher semantic version than current.
// Both may omit the "v" prefix.
func Newer(current, latest string) (bool, error) {
	c, err := canonical(current)
	if err != nil {
		return false, err
	}
	l, err := canonical(latest)
	if err != nil {
		return false, err
	}
	return semver.Compare(l, c) > 0, nil
}

func isDevBuild(v string) bool {
	switch strings.TrimSpace(v) {
	case "dev", "(devel)":
		return true
	}
	return false
}
