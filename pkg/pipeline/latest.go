package pipeline

import "sync"

// Latest retains the most recent successful result for display, keyed by a
// monotonically increasing request sequence. When requests overlap, a slow
// run that finishes after a newer one must not clobber the newer result:
// Offer discards any result whose sequence is older than the stored one.
//
// Usage:
//
//	seq := latest.Next()
//	result, _ := runner.SanitizeAndRender(ctx, raw, opts)
//	latest.Offer(seq, result)
type Latest struct {
	mu      sync.Mutex
	nextSeq uint64
	seq     uint64
	result  *Result
}

// Next allocates the sequence number for a new request. Higher numbers are
// newer.
func (l *Latest) Next() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextSeq++
	return l.nextSeq
}

// Offer installs the result unless a newer request has already installed
// one. It reports whether the result was accepted.
func (l *Latest) Offer(seq uint64, result *Result) bool {
	if result == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.result != nil && seq <= l.seq {
		return false
	}
	l.seq = seq
	l.result = result
	return true
}

// Get returns the retained result, or false when nothing has been accepted
// yet.
func (l *Latest) Get() (*Result, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.result == nil {
		return nil, false
	}
	return l.result, true
}
