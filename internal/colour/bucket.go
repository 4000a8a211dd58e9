package colour

import (
	"fmt"
	"slices"
)

const (
	// GranularityNormal is the quantization cell size used by default.
	GranularityNormal = 32

	// GranularityHighVariety is the cell size used in high-variety mode.
	// The cells are wider, so this groups colours more coarsely.
	GranularityHighVariety = 64
)

// Granularity returns the quantization cell size for the given mode.
func Granularity(highVariety bool) int {
	if highVariety {
		return GranularityHighVariety
	}
	return GranularityNormal
}

// BucketKey identifies a quantization cell. The three quantized channels
// are packed as r<<16 | g<<8 | b.
type BucketKey uint32

// NewBucketKey quantizes a pixel to the cell containing it.
func NewBucketKey(c RGB, granularity int) BucketKey {
	q := func(v uint8) uint32 {
		return uint32(int(v) / granularity * granularity)
	}
	return BucketKey(q(c.R)<<16 | q(c.G)<<8 | q(c.B))
}

// RGB returns the quantized channel values of the key.
func (k BucketKey) RGB() RGB {
	return RGB{R: uint8(k >> 16), G: uint8(k >> 8), B: uint8(k)}
}

// String returns the key as six lowercase hex digits (e.g., "e0a040").
func (k BucketKey) String() string {
	return fmt.Sprintf("%06x", uint32(k))
}

// BucketStat holds running totals for every pixel assigned to a bucket.
type BucketStat struct {
	Count int   `json:"count"`
	SumR  int64 `json:"sum_r"`
	SumG  int64 `json:"sum_g"`
	SumB  int64 `json:"sum_b"`
}

// Mean returns the unrounded mean colour of the bucket.
func (s BucketStat) Mean() (r, g, b float64) {
	n := float64(s.Count)
	return float64(s.SumR) / n, float64(s.SumG) / n, float64(s.SumB) / n
}

// Bucket pairs a key with its statistics.
type Bucket struct {
	Key  BucketKey  `json:"key"`
	Stat BucketStat `json:"stat"`
}

// BucketList is a set of buckets ordered by count, largest first.
// Buckets with equal counts keep the order in which their first pixel was seen.
type BucketList []Bucket

// TotalCount returns the number of pixels accounted for by the list.
func (l BucketList) TotalCount() int {
	total := 0
	for _, b := range l {
		total += b.Stat.Count
	}
	return total
}

// Aggregator builds a histogram over quantized colours.
// Buckets live in an arena slice in first-seen order; the map only indexes it.
// An Aggregator is not safe for concurrent use.
type Aggregator struct {
	granularity int
	index       map[BucketKey]int
	buckets     []Bucket
	pixels      int
}

// NewAggregator creates an empty aggregator for the given mode.
func NewAggregator(highVariety bool) *Aggregator {
	return &Aggregator{
		granularity: Granularity(highVariety),
		index:       make(map[BucketKey]int),
	}
}

// Add assigns one pixel to its bucket.
func (a *Aggregator) Add(c RGB) {
	key := NewBucketKey(c, a.granularity)
	i, ok := a.index[key]
	if !ok {
		i = len(a.buckets)
		a.index[key] = i
		a.buckets = append(a.buckets, Bucket{Key: key})
	}

	stat := &a.buckets[i].Stat
	stat.Count++
	stat.SumR += int64(c.R)
	stat.SumG += int64(c.G)
	stat.SumB += int64(c.B)
	a.pixels++
}

// Pixels returns the number of pixels added so far.
func (a *Aggregator) Pixels() int {
	return a.pixels
}

// Buckets returns a sorted copy of the histogram. The aggregator can keep
// accepting pixels afterwards without affecting the returned list.
func (a *Aggregator) Buckets() BucketList {
	out := make(BucketList, len(a.buckets))
	copy(out, a.buckets)
	slices.SortStableFunc(out, func(x, y Bucket) int {
		return y.Stat.Count - x.Stat.Count
	})
	return out
}

// Aggregate quantizes a row-major pixel sequence and returns its sorted
// bucket list. An empty sequence yields an empty list.
func Aggregate(pixels []RGB, highVariety bool) BucketList {
	a := NewAggregator(highVariety)
	for _, p := range pixels {
		a.Add(p)
	}
	return a.Buckets()
}
