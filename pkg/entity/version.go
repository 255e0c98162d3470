package entity

import (
	"sort"
	"strings"
)

// CompareVersionNumbers orders dot-separated version strings. It returns
// a positive value when a is newer than b, negative when older, 0 when equal.
//
// Segments are compared left to right by numeric value; a missing segment
// counts as 0. A segment's numeric value is its leading digit run, so
// "2", "10" and "3rc1" all parse. Segments with equal numeric value fall
// back to a lexical comparison of the raw segment text, which gives
// non-numeric suffixes ("1.0-beta" vs "1.0") a stable total order.
func CompareVersionNumbers(a, b string) int {
	segsA := strings.Split(a, ".")
	segsB := strings.Split(b, ".")

	n := len(segsA)
	if len(segsB) > n {
		n = len(segsB)
	}

	for i := 0; i < n; i++ {
		rawA, rawB := "0", "0"
		if i < len(segsA) {
			rawA = segsA[i]
		}
		if i < len(segsB) {
			rawB = segsB[i]
		}

		numA := leadingNumber(rawA)
		numB := leadingNumber(rawB)
		if numA != numB {
			if numA > numB {
				return 1
			}
			return -1
		}

		if rawA != rawB {
			if rawA > rawB {
				return 1
			}
			return -1
		}
	}

	return 0
}

// leadingNumber parses the leading digit run of a segment; 0 if none.
func leadingNumber(seg string) int {
	num := 0
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if c < '0' || c > '9' {
			break
		}
		num = num*10 + int(c-'0')
	}
	return num
}

// SortVersions orders versions newest-first: descending version number,
// ties broken by descending CreatedAt.
func SortVersions(versions []Version) {
	sort.SliceStable(versions, func(i, j int) bool {
		cmp := CompareVersionNumbers(versions[i].VersionNumber, versions[j].VersionNumber)
		if cmp != 0 {
			return cmp > 0
		}
		return versions[i].CreatedAt > versions[j].CreatedAt
	})
}
