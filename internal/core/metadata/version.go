package metadata

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// IncrementVersion bumps the patch of a major.minor.patch version. Leading
// zeros are accepted ("1.2.03" becomes "1.2.4"). Anything that is not three
// non-negative integers, pre-release and build suffixes included, resets to
// DefaultVersion instead of failing.
func IncrementVersion(current string) string {
	parts := strings.Split(current, ".")
	if len(parts) != 3 {
		return DefaultVersion
	}
	var nums [3]uint64
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return DefaultVersion
		}
		nums[i] = n
	}
	return semver.New(nums[0], nums[1], nums[2], "", "").IncPatch().String()
}
