package radio_test

import (
	"math"
	"testing"

	"github.com/vjt/quectel-5g-tools/radio"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEARFCNToMHz(t *testing.T) {
	tests := []struct {
		name   string
		earfcn int
		freq   float64
		band   int
	}{
		{"Band 1", 275, 2137.5, 1},
		{"Band 3", 1350, 1820.0, 3},
		{"Band 3 range start", 1200, 1805.0, 3},
		{"Band 7", 3000, 2645.0, 7},
		{"Band 20", 6300, 806.0, 20},
		{"Band 28", 9435, 780.5, 28},
		{"Band 32", 10000, 1460.0, 32},
		{"Band 38 TDD", 37750, 2570.0, 38},
		{"Band 40 TDD", 39150, 2350.0, 40},
		{"Band 66", 66436, 2110.0, 66},
		{"Band 71", 68586, 617.0, 71},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			freq, band, ok := radio.EARFCNToMHz(tt.earfcn)
			if !ok {
				t.Fatalf("EARFCN %d not found", tt.earfcn)
			}
			if band != tt.band {
				t.Errorf("band = %d, want %d", band, tt.band)
			}
			if !almostEqual(freq, tt.freq) {
				t.Errorf("freq = %v, want %v", freq, tt.freq)
			}
		})
	}

	t.Run("Unknown channel", func(t *testing.T) {
		for _, earfcn := range []int{999999, 2650, -1} {
			if _, _, ok := radio.EARFCNToMHz(earfcn); ok {
				t.Errorf("EARFCN %d unexpectedly resolved", earfcn)
			}
		}
	})
}

func TestNRARFCNToMHz(t *testing.T) {
	t.Run("n78 overlap precedence over n77", func(t *testing.T) {
		// 648768 sits inside both the n78 range and the broader n77 range;
		// the narrower n78 row must win.
		freq, band, ok := radio.NRARFCNToMHz(648768)
		if !ok {
			t.Fatal("ARFCN 648768 not found")
		}
		if band != 78 {
			t.Errorf("band = %d, want 78", band)
		}
		if !almostEqual(freq, 3731.52) {
			t.Errorf("freq = %v, want 3731.52", freq)
		}
	})

	t.Run("n77 beyond the n78 range", func(t *testing.T) {
		_, band, ok := radio.NRARFCNToMHz(660000)
		if !ok || band != 77 {
			t.Errorf("got band %d ok=%v, want 77", band, ok)
		}
	})

	t.Run("n1 overlap precedence over n66", func(t *testing.T) {
		_, band, ok := radio.NRARFCNToMHz(428000)
		if !ok || band != 1 {
			t.Errorf("got band %d ok=%v, want 1", band, ok)
		}
		_, band, ok = radio.NRARFCNToMHz(436000)
		if !ok || band != 66 {
			t.Errorf("got band %d ok=%v, want 66", band, ok)
		}
	})

	t.Run("n20 overlap precedence over n28", func(t *testing.T) {
		// 159000 sits inside both ranges; the narrower n20 row must win.
		freq, band, ok := radio.NRARFCNToMHz(159000)
		if !ok || band != 20 {
			t.Fatalf("got band %d ok=%v, want 20", band, ok)
		}
		if !almostEqual(freq, 795.0) {
			t.Errorf("freq = %v, want 795.0", freq)
		}
		_, band, ok = radio.NRARFCNToMHz(155000)
		if !ok || band != 28 {
			t.Errorf("got band %d ok=%v, want 28", band, ok)
		}
	})

	t.Run("Low raster domain", func(t *testing.T) {
		// n5: 5 kHz raster referenced at 0 MHz.
		freq, band, ok := radio.NRARFCNToMHz(175000)
		if !ok || band != 5 {
			t.Fatalf("got band %d ok=%v, want 5", band, ok)
		}
		if !almostEqual(freq, 875.0) {
			t.Errorf("freq = %v, want 875.0", freq)
		}
	})

	t.Run("High raster domain is mmWave", func(t *testing.T) {
		freq, band, ok := radio.NRARFCNToMHz(2079166)
		if !ok || band != 261 {
			t.Fatalf("got band %d ok=%v, want 261", band, ok)
		}
		want := 24250.08 + 0.06*float64(2079166-2016667)
		if !almostEqual(freq, want) {
			t.Errorf("freq = %v, want %v", freq, want)
		}
		if !radio.IsMMWave(2079166) {
			t.Error("ARFCN 2079166 not flagged as mmWave")
		}
		if radio.IsMMWave(648768) {
			t.Error("ARFCN 648768 flagged as mmWave")
		}
	})

	t.Run("Unknown channel", func(t *testing.T) {
		for _, arfcn := range []int{100000, 999999, 0} {
			if _, _, ok := radio.NRARFCNToMHz(arfcn); ok {
				t.Errorf("ARFCN %d unexpectedly resolved", arfcn)
			}
		}
	})
}

func TestFormatFrequency(t *testing.T) {
	tests := []struct {
		name    string
		channel int
		is5G    bool
		want    string
	}{
		{"LTE band 3", 1350, false, "1820.0 MHz (B3)"},
		{"NR band 78", 648768, true, "3731.5 MHz (N78)"},
		{"Unknown LTE", 999999, false, "Unknown (999999)"},
		{"Unknown NR", 100000, true, "Unknown (100000)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := radio.FormatFrequency(tt.channel, tt.is5G); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
