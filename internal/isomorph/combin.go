package isomorph

import "math/bits"

var smallBinomial = func() (t [64][maxCards + 1]uint64) {
	for n := range t {
		t[n][0] = 1
		for k := 1; k <= maxCards && k <= n; k++ {
			t[n][k] = t[n-1][k-1] + t[n-1][k]
		}
	}
	return t
}()

// binomial returns C(n, k), or 0 when k > n.
func binomial(n, k uint64) uint64 {
	if k > n {
		return 0
	}
	if n < 64 && k <= maxCards {
		return smallBinomial[n][k]
	}
	if k > n-k {
		k = n - k
	}
	r := uint64(1)
	for i := uint64(0); i < k; i++ {
		r = r * (n - i) / (i + 1)
	}
	return r
}

// largestBelow returns the largest w in [lo, hi] with C(w, k) <= v.
// C(lo, k) must not exceed v.
func largestBelow(v, k, lo, hi uint64) uint64 {
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if binomial(mid, k) <= v {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// colexRank ranks a set of positions in colexicographic order.
func colexRank(set uint16) uint64 {
	var idx uint64
	i := uint64(1)
	for rest := set; rest != 0; rest &= rest - 1 {
		idx += binomial(uint64(bits.TrailingZeros16(rest)), i)
		i++
	}
	return idx
}

// colexUnrank inverts colexRank for k-element subsets of n positions.
func colexUnrank(idx uint64, k, n int) uint16 {
	var set uint16
	c := n - 1
	for i := k; i > 0; i-- {
		for binomial(uint64(c), uint64(i)) > idx {
			c--
		}
		set |= 1 << c
		idx -= binomial(uint64(c), uint64(i))
		c--
	}
	return set
}

// compress removes the used positions, shifting higher positions down.
func compress(set, used uint16) uint16 {
	var out uint16
	for rest := set; rest != 0; rest &= rest - 1 {
		pos := bits.TrailingZeros16(rest)
		below := bits.OnesCount16(used & (1<<pos - 1))
		out |= 1 << (pos - below)
	}
	return out
}

// expand maps compressed positions back onto the unused positions of n.
func expand(set, used uint16, n int) uint16 {
	var out uint16
	p := 0
	for pos := range n {
		if used&(1<<pos) != 0 {
			continue
		}
		if set&(1<<p) != 0 {
			out |= 1 << pos
		}
		p++
	}
	return out
}
