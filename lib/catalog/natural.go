// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

// naturalLess orders strings so that embedded decimal numbers compare
// by value: "part2" sorts before "part10". Partition names come from
// the builder as part1..partN and operators expect that order in logs
// and submit files.
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		aDigit, bDigit := isDigit(a[0]), isDigit(b[0])
		switch {
		case aDigit && bDigit:
			aRun, aRest := splitDigits(a)
			bRun, bRest := splitDigits(b)
			aTrimmed, bTrimmed := trimZeros(aRun), trimZeros(bRun)
			if len(aTrimmed) != len(bTrimmed) {
				return len(aTrimmed) < len(bTrimmed)
			}
			if aTrimmed != bTrimmed {
				return aTrimmed < bTrimmed
			}
			if len(aRun) != len(bRun) {
				return len(aRun) < len(bRun)
			}
			a, b = aRest, bRest
		case a[0] != b[0]:
			return a[0] < b[0]
		default:
			a, b = a[1:], b[1:]
		}
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func splitDigits(s string) (string, string) {
	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	return s[:end], s[end:]
}

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}
