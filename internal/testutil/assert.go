// Package testutil holds fakes and assertions shared by the engine's tests.
package testutil

import (
	"strings"
	"testing"

	"scratchrobin-hq/advanced/pkg/reject"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertReject fails the test unless err is a reject carrying code.
func AssertReject(t *testing.T, err error, code string) *reject.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected reject %s, got nil", code)
	}
	r, ok := reject.As(err)
	if !ok {
		t.Fatalf("expected reject %s, got %T: %v", code, err, err)
	}
	if r.Code != code {
		t.Fatalf("expected reject %s, got %s (%s)", code, r.Code, r.Message)
	}
	return r
}

// AssertRejectDetail is AssertReject plus a check on the reject detail.
func AssertRejectDetail(t *testing.T, err error, code, detail string) {
	t.Helper()
	r := AssertReject(t, err, code)
	if r.Detail != detail {
		t.Fatalf("expected detail %q, got %q", detail, r.Detail)
	}
}

// AssertContains fails the test if haystack doesn't contain needle.
func AssertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}
