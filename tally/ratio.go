// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

// ratio is an exact non-negative fraction. The zero value is 0.
type ratio struct {
	num int64
	den int64
}

func whole(n int) ratio {
	return ratio{num: int64(n), den: 1}
}

func (r ratio) denominator() int64 {
	if r.den == 0 {
		return 1
	}
	return r.den
}

// cmp returns -1, 0 or 1 as r is less than, equal to or greater than o
func (r ratio) cmp(o ratio) int {
	left := r.num * o.denominator()
	right := o.num * r.denominator()
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

func maxRatio(a, b ratio) ratio {
	if a.cmp(b) >= 0 {
		return a
	}
	return b
}

func minRatio(a, b ratio) ratio {
	if a.cmp(b) <= 0 {
		return a
	}
	return b
}
