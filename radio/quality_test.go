package radio_test

import (
	"testing"

	"github.com/vjt/quectel-5g-tools/radio"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func TestClassifyRSRP(t *testing.T) {
	tests := []struct {
		name  string
		value *int
		want  radio.Quality
	}{
		{"Missing reading", nil, radio.Unknown},
		{"Excellent boundary", intp(-80), radio.Excellent},
		{"Just below excellent", intp(-81), radio.Good},
		{"Good boundary", intp(-90), radio.Good},
		{"Fair boundary", intp(-100), radio.Fair},
		{"Poor", intp(-110), radio.Poor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := radio.ClassifyRSRP(tt.value); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyRSRQ(t *testing.T) {
	tests := []struct {
		name  string
		value *int
		want  radio.Quality
	}{
		{"Missing reading", nil, radio.Unknown},
		{"Excellent", intp(-9), radio.Excellent},
		{"Good", intp(-11), radio.Good},
		{"Fair boundary", intp(-15), radio.Fair},
		{"Poor", intp(-16), radio.Poor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := radio.ClassifyRSRQ(tt.value); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifySINR(t *testing.T) {
	tests := []struct {
		name  string
		value *float64
		is5G  bool
		want  radio.Quality
	}{
		{"Missing reading", nil, false, radio.Unknown},
		{"Excellent boundary", floatp(20), false, radio.Excellent},
		{"Good", floatp(13.5), false, radio.Good},
		{"Fair boundary", floatp(0), true, radio.Fair},
		{"Poor", floatp(-3.5), true, radio.Poor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := radio.ClassifySINR(tt.value, tt.is5G); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			// Pure function: a second call must agree with the first.
			if again := radio.ClassifySINR(tt.value, tt.is5G); again != tt.want {
				t.Errorf("second call got %v, want %v", again, tt.want)
			}
		})
	}
}

func TestBeepCount(t *testing.T) {
	tests := []struct {
		name string
		sinr *float64
		want int
	}{
		{"Missing reading", nil, 0},
		{"Top of scale", floatp(22), 6},
		{"Nineteen", floatp(19), 6},
		{"Exactly eighteen", floatp(18), 5},
		// 18.5 misses the exact-match step at 18 and lands on the
		// >=17 step. Shipped behavior, kept on purpose.
		{"Between eighteen and nineteen", floatp(18.5), 4},
		{"Exactly seventeen", floatp(17), 4},
		{"Exactly sixteen", floatp(16), 3},
		{"Between sixteen and seventeen", floatp(16.5), 2},
		{"Fourteen", floatp(14), 2},
		{"Twelve", floatp(12), 1},
		{"Below scale", floatp(11.9), 0},
		{"Negative", floatp(-5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := radio.BeepCount(tt.sinr); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
