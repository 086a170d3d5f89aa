package models

import (
	"encoding/json"
	"testing"
)

// Models frequently cite pages as a bare number, a quoted number, or the
// literal "unknown"; all three must decode without error.
func TestPageRefUnmarshal(t *testing.T) {
	cases := []struct {
		in     string
		known  bool
		number int
	}{
		{`4`, true, 4},
		{`"4"`, true, 4},
		{`" 12 "`, true, 12},
		{`"unknown"`, false, 0},
		{`"page four"`, false, 0},
		{`null`, false, 0},
	}
	for _, tc := range cases {
		var p PageRef
		if err := json.Unmarshal([]byte(tc.in), &p); err != nil {
			t.Errorf("%s: unexpected error %v", tc.in, err)
			continue
		}
		if p.Known != tc.known || p.Number != tc.number {
			t.Errorf("%s: got %+v, want known=%v number=%d", tc.in, p, tc.known, tc.number)
		}
	}
}

func TestPageRefMarshal(t *testing.T) {
	if b, _ := json.Marshal(KnownPage(7)); string(b) != "7" {
		t.Errorf("known page marshaled as %s", b)
	}
	if b, _ := json.Marshal(UnknownPage()); string(b) != `"unknown"` {
		t.Errorf("unknown page marshaled as %s", b)
	}
}
