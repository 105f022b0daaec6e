package pipeline

import "testing"

func TestLatestEmpty(t *testing.T) {
	var l Latest
	if _, ok := l.Get(); ok {
		t.Error("empty Latest should report no result")
	}
	if l.Offer(1, nil) {
		t.Error("nil result should be rejected")
	}
}

func TestLatestOrdering(t *testing.T) {
	var l Latest

	first := l.Next()
	second := l.Next()
	if second <= first {
		t.Fatalf("sequence not increasing: %d then %d", first, second)
	}

	// The newer request finishes first.
	newer := &Result{Tier: TierPrimary, Markup: []byte("new")}
	if !l.Offer(second, newer) {
		t.Fatal("newer result rejected")
	}

	// The older request finishes later and must be discarded.
	older := &Result{Tier: TierPrimary, Markup: []byte("old")}
	if l.Offer(first, older) {
		t.Error("stale result accepted")
	}

	got, ok := l.Get()
	if !ok || string(got.Markup) != "new" {
		t.Errorf("retained result = %v, want the newer one", got)
	}
}

func TestLatestSupersedes(t *testing.T) {
	var l Latest

	a := l.Next()
	b := l.Next()

	l.Offer(a, &Result{Markup: []byte("a")})
	if !l.Offer(b, &Result{Markup: []byte("b")}) {
		t.Error("newer result should supersede older")
	}

	got, _ := l.Get()
	if string(got.Markup) != "b" {
		t.Errorf("retained %q, want b", got.Markup)
	}
}
