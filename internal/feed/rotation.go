package feed

import (
	"math/rand"
)

// Rotation tracks where a feed session is in its category's subreddits.
//
// order is a permutation of the category's subreddits, cursor marks the
// start of the next window and token is reddit's "after" value for paging
// inside the current window. Not safe for concurrent use.
type Rotation struct {
	registry   *Registry
	rnd        *rand.Rand
	maxRetries int

	category string
	order    []string
	cursor   int
	token    string
	retries  int
}

func NewRotation(registry *Registry, rnd *rand.Rand, maxRetries int, category string) *Rotation {
	r := &Rotation{registry: registry, rnd: rnd, maxRetries: maxRetries}
	r.Reset(category)
	return r
}

// Reset starts a fresh traversal of category from a new random order
func (r *Rotation) Reset(category string) {
	r.category = category
	r.order = r.registry.SourcesFor(category)
	r.shuffle()
	r.cursor = 0
	r.token = ""
	r.retries = 0
}

// NextWindow returns up to size subreddits starting at the cursor.
// Windows never wrap; the last one may be short.
func (r *Rotation) NextWindow(size int) []string {
	if size <= 0 || len(r.order) == 0 {
		return nil
	}
	end := min(r.cursor+size, len(r.order))
	window := make([]string, end-r.cursor)
	copy(window, r.order[r.cursor:end])
	return window
}

// Advance moves the cursor by step, reshuffling whenever it lands back on 0
func (r *Rotation) Advance(step int) {
	if len(r.order) == 0 {
		return
	}
	r.cursor = (r.cursor + step) % len(r.order)
	if r.cursor == 0 {
		r.shuffle()
	}
}

// BumpRetry counts one more retry and reports whether the budget is spent
func (r *Rotation) BumpRetry() bool {
	r.retries++
	return r.Exhausted()
}

func (r *Rotation) Exhausted() bool {
	return r.retries >= r.maxRetries
}

func (r *Rotation) ResetRetries() { r.retries = 0 }

func (r *Rotation) Retries() int { return r.retries }

func (r *Rotation) Category() string { return r.category }

func (r *Rotation) Cursor() int { return r.cursor }

func (r *Rotation) Token() string { return r.token }

func (r *Rotation) SetToken(token string) { r.token = token }

// Order returns a copy of the current traversal order
func (r *Rotation) Order() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Rotation) shuffle() {
	r.rnd.Shuffle(len(r.order), func(i, j int) {
		r.order[i], r.order[j] = r.order[j], r.order[i]
	})
}
