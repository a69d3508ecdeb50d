package utils

import (
	"math/rand"

	"github.com/Blackdeer1524/pagecache/src/pkg/assert"
)

func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// GenerateUniqueInts returns count distinct values from [lo, hi] in random
// order.
func GenerateUniqueInts[T Integer](count int, lo, hi T, rng *rand.Rand) []T {
	assert.Assert(lo <= hi, "empty range [%v, %v]", lo, hi)

	span := int(hi-lo) + 1
	assert.Assert(count <= span, "cannot pick %d unique values out of %d", count, span)

	if count == 0 {
		return []T{}
	}

	// sparse picks: rejection sampling is cheaper than materializing the range
	if count <= span/2 {
		seen := make(map[T]struct{}, count)
		res := make([]T, 0, count)
		for len(res) < count {
			v := lo + T(rng.Intn(span))
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			res = append(res, v)
		}
		return res
	}

	all := make([]T, span)
	for i := range all {
		all[i] = lo + T(i)
	}
	for i := span - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		all[i], all[j] = all[j], all[i]
	}

	return all[:count]
}
