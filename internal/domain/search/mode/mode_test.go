package mode

import "testing"

func TestIsValid(t *testing.T) {
	for _, m := range []Mode{Relevance, Newest, Oldest} {
		if !m.IsValid() {
			t.Errorf("%q should be valid", m)
		}
	}
	for _, m := range []Mode{"", "alphabetical", "RELEVANCE"} {
		if m.IsValid() {
			t.Errorf("%q should be invalid", m)
		}
	}
}
