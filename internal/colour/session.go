package colour

import "sync"

// Result is the outcome of one Session.Update call.
type Result struct {
	// Generation orders results; a higher generation supersedes a lower one.
	Generation uint64 `json:"generation"`

	// Settings are the normalised settings the palettes were built with.
	Settings Settings `json:"settings"`

	// Buckets is the number of distinct buckets in the image.
	Buckets int `json:"buckets"`

	// Rebucketed is true when the bucket list had to be rebuilt for this result.
	Rebucketed bool `json:"rebucketed"`

	Palettes Palettes `json:"palettes"`
}

// Session holds one image's pixels and caches its bucket list between
// parameter changes. Only a new image or a change of HighVariety rebuilds
// the buckets; every other change just recomposes the palettes.
//
// A Session is safe for concurrent use. Aggregation and composition run
// outside the lock, so callers that update from several goroutines should
// keep only results for which IsCurrent still reports true.
type Session struct {
	mu sync.Mutex

	pixels []RGB
	epoch  uint64

	buckets      BucketList
	bucketsValid bool
	bucketsFor   Settings
	bucketsGen   uint64

	generation uint64
}

// NewSession creates a session with no image loaded.
func NewSession() *Session {
	return &Session{}
}

// SetPixels replaces the session's image and drops any cached buckets.
// The slice is retained, not copied; callers must not modify it afterwards.
func (s *Session) SetPixels(pixels []RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pixels = pixels
	s.epoch++
	s.buckets = nil
	s.bucketsValid = false
	s.generation++
}

// Reset clears the image. Subsequent updates yield empty palettes.
func (s *Session) Reset() {
	s.SetPixels(nil)
}

// Update generates both palettes for the current image under the given
// settings, reusing the cached bucket list when it is still valid.
func (s *Session) Update(settings Settings) Result {
	settings = settings.Normalise()

	s.mu.Lock()
	s.generation++
	gen := s.generation
	epoch := s.epoch
	pixels := s.pixels
	buckets := s.buckets
	rebucket := !s.bucketsValid || s.bucketsFor.NeedsRebucket(settings)
	s.mu.Unlock()

	if rebucket {
		buckets = Aggregate(pixels, settings.HighVariety)

		s.mu.Lock()
		if s.epoch == epoch && gen > s.bucketsGen {
			s.buckets = buckets
			s.bucketsValid = true
			s.bucketsFor = settings
			s.bucketsGen = gen
		}
		s.mu.Unlock()
	}

	return Result{
		Generation: gen,
		Settings:   settings,
		Buckets:    len(buckets),
		Rebucketed: rebucket,
		Palettes:   ComposePalettes(buckets, settings),
	}
}

// Buckets returns a copy of the cached bucket list, or nil if none is cached.
func (s *Session) Buckets() BucketList {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.bucketsValid {
		return nil
	}
	out := make(BucketList, len(s.buckets))
	copy(out, s.buckets)
	return out
}

// IsCurrent reports whether gen is the latest generation issued.
func (s *Session) IsCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation
}
