//go:build blackbox

package blackbox

import (
	"strings"
	"testing"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func expect(t *testing.T, out string, subs ...string) {
	t.Helper()
	for _, sub := range subs {
		if !contains(out, sub) {
			t.Fatalf("expected %q in output, got:\n%s", sub, out)
		}
	}
}
