package test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertIdempotent runs fn twice and fails the test if the two results differ.
func AssertIdempotent[T any](t *testing.T, fn func(*testing.T) T, opts ...cmp.Option) T {
	t.Helper()
	first := fn(t)
	if t.Failed() {
		return first
	}
	second := fn(t)
	if t.Failed() {
		t.Fatal("the function is not idempotent: second run failed")
	}
	if diff := cmp.Diff(first, second, opts...); diff != "" {
		t.Fatalf("the function is not idempotent (-first +second):\n%s", diff)
	}
	return first
}
