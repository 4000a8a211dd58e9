package colour

import (
	"math/rand/v2"
	"slices"
	"testing"
)

// randomPixels returns a reproducible pseudo-random pixel sequence.
func randomPixels(n int, seed uint64) []RGB {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pixels := make([]RGB, n)
	for i := range pixels {
		pixels[i] = RGB{R: uint8(rng.IntN(256)), G: uint8(rng.IntN(256)), B: uint8(rng.IntN(256))}
	}
	return pixels
}

func TestNewBucketKey(t *testing.T) {
	tests := []struct {
		name        string
		rgb         RGB
		highVariety bool
		want        string
	}{
		{name: "red normal", rgb: RGB{R: 255, G: 0, B: 0}, want: "e00000"},
		{name: "red high variety", rgb: RGB{R: 255, G: 0, B: 0}, highVariety: true, want: "c00000"},
		{name: "cell boundary", rgb: RGB{R: 31, G: 32, B: 63}, want: "002020"},
		{name: "mixed", rgb: RGB{R: 200, G: 100, B: 50}, want: "c06020"},
		{name: "mixed high variety", rgb: RGB{R: 200, G: 100, B: 50}, highVariety: true, want: "c04000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBucketKey(tt.rgb, Granularity(tt.highVariety))
			if got.String() != tt.want {
				t.Errorf("NewBucketKey(%+v).String() = %s, want %s", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestBucketKeyRGB(t *testing.T) {
	key := NewBucketKey(RGB{R: 200, G: 100, B: 50}, GranularityNormal)
	if got, want := key.RGB(), (RGB{R: 192, G: 96, B: 32}); got != want {
		t.Errorf("RGB() = %+v, want %+v", got, want)
	}
}

func TestAggregateEmpty(t *testing.T) {
	for _, highVariety := range []bool{false, true} {
		got := Aggregate(nil, highVariety)
		if len(got) != 0 {
			t.Errorf("Aggregate(nil, %v) returned %d buckets, want 0", highVariety, len(got))
		}
	}
}

func TestAggregateCountsEveryPixel(t *testing.T) {
	for _, n := range []int{1, 2, 17, 1000, 50000} {
		pixels := randomPixels(n, uint64(n))
		for _, highVariety := range []bool{false, true} {
			buckets := Aggregate(pixels, highVariety)
			if got := buckets.TotalCount(); got != n {
				t.Errorf("n=%d highVariety=%v: total count = %d, want %d", n, highVariety, got, n)
			}
			for _, b := range buckets {
				if b.Stat.Count < 1 {
					t.Fatalf("bucket %s has count %d", b.Key, b.Stat.Count)
				}
			}
		}
	}
}

func TestAggregateSortedByCount(t *testing.T) {
	buckets := Aggregate(randomPixels(20000, 7), false)
	for i := 1; i < len(buckets); i++ {
		if buckets[i].Stat.Count > buckets[i-1].Stat.Count {
			t.Fatalf("bucket %d count %d exceeds bucket %d count %d", i, buckets[i].Stat.Count, i-1, buckets[i-1].Stat.Count)
		}
	}
}

func TestAggregateTieBreakIsFirstSeen(t *testing.T) {
	red := RGB{R: 255}
	green := RGB{G: 255}
	blue := RGB{B: 255}

	tests := []struct {
		name   string
		pixels []RGB
		want   []string
	}{
		{
			name:   "all tied",
			pixels: []RGB{green, red, blue, red, blue, green},
			want:   []string{"00e000", "e00000", "0000e0"},
		},
		{
			name:   "count beats order",
			pixels: []RGB{blue, red, red, green, green, green},
			want:   []string{"00e000", "e00000", "0000e0"},
		},
		{
			name:   "partial tie",
			pixels: []RGB{blue, green, red, red},
			want:   []string{"e00000", "0000e0", "00e000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := Aggregate(tt.pixels, false)
			got := make([]string, len(buckets))
			for i, b := range buckets {
				got[i] = b.Key.String()
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregateDeterministic(t *testing.T) {
	pixels := randomPixels(30000, 42)
	first := Aggregate(pixels, false)
	for range 5 {
		if again := Aggregate(pixels, false); !slices.Equal(first, again) {
			t.Fatal("Aggregate returned a different bucket list for identical input")
		}
	}
}

func TestAggregateSums(t *testing.T) {
	buckets := Aggregate([]RGB{{R: 200, G: 100, B: 50}, {R: 210, G: 110, B: 60}}, false)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}

	want := BucketStat{Count: 2, SumR: 410, SumG: 210, SumB: 110}
	if buckets[0].Stat != want {
		t.Errorf("Stat = %+v, want %+v", buckets[0].Stat, want)
	}

	r, g, b := buckets[0].Stat.Mean()
	if r != 205 || g != 105 || b != 55 {
		t.Errorf("Mean() = (%v, %v, %v), want (205, 105, 55)", r, g, b)
	}
}

func TestAggregateGranularity(t *testing.T) {
	// Each grey sits in its own 32 cell but pairs share a 64 cell, so high
	// variety mode groups more coarsely.
	pixels := []RGB{
		{R: 10, G: 10, B: 10},
		{R: 40, G: 40, B: 40},
		{R: 70, G: 70, B: 70},
		{R: 100, G: 100, B: 100},
	}

	if got := len(Aggregate(pixels, false)); got != 4 {
		t.Errorf("normal mode: got %d buckets, want 4", got)
	}
	if got := len(Aggregate(pixels, true)); got != 2 {
		t.Errorf("high variety mode: got %d buckets, want 2", got)
	}

	random := randomPixels(5000, 3)
	normal, coarse := len(Aggregate(random, false)), len(Aggregate(random, true))
	if coarse > 64 || coarse >= normal {
		t.Errorf("high variety buckets = %d, normal = %d; want fewer, at most 64", coarse, normal)
	}
}

func TestAggregatorBucketsIsSnapshot(t *testing.T) {
	a := NewAggregator(false)
	a.Add(RGB{R: 255})
	snapshot := a.Buckets()

	a.Add(RGB{R: 255})
	a.Add(RGB{G: 255})

	if snapshot[0].Stat.Count != 1 || len(snapshot) != 1 {
		t.Errorf("snapshot changed after Add: %+v", snapshot)
	}
	if a.Pixels() != 3 {
		t.Errorf("Pixels() = %d, want 3", a.Pixels())
	}
	if got := a.Buckets(); len(got) != 2 || got[0].Stat.Count != 2 {
		t.Errorf("Buckets() = %+v, want two buckets led by count 2", got)
	}
}
