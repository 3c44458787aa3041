package pkg

import (
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions orders versions as case-insensitive strings, character by
// character, with a shorter prefix first. It is not numeric: "10.0" < "2.0".
// Returns -1, 0 or 1.
func CompareVersions(a, b string) int {
	ar, br := []rune(a), []rune(b)

	n := min(len(ar), len(br))
	for i := 0; i < n; i++ {
		ca, cb := foldRune(ar[i]), foldRune(br[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(ar) < len(br):
		return -1
	case len(ar) > len(br):
		return 1
	default:
		return 0
	}
}

func versionLess(a, b string) bool {
	return CompareVersions(a, b) < 0
}

func foldRune(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}

// orderingDisagrees reports whether a and b both parse as semantic versions and
// their string order differs from their semantic order.
func orderingDisagrees(a, b string) bool {
	va, err := semver.NewVersion(a)
	if err != nil {
		return false
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return false
	}
	return CompareVersions(a, b) != va.Compare(vb)
}
