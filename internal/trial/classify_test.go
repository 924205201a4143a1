package trial

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		rt   float64
		want Classification
	}{
		{name: "lower boundary is valid", rt: 100, want: Valid},
		{name: "upper boundary is valid", rt: 500, want: Valid},
		{name: "mid range", rt: 250, want: Valid},
		{name: "fractional valid", rt: 100.001, want: Valid},
		{name: "just below lower boundary", rt: 99.999, want: Commission},
		{name: "fast response", rt: 50, want: Commission},
		{name: "zero", rt: 0, want: Commission},
		{name: "negative", rt: -10, want: Commission},
		{name: "just above upper boundary", rt: 500.001, want: Lapse},
		{name: "slow response", rt: 1200, want: Lapse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.rt); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.rt, got, tt.want)
			}
		})
	}
}

func TestClassificationString(t *testing.T) {
	tests := []struct {
		c    Classification
		want string
	}{
		{Valid, "valid"},
		{Commission, "commission"},
		{Lapse, "lapse"},
		{Classification(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Classification(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}
