package indicator

import (
	"math"
	"testing"

	"github.com/fertroya/cedears-ai-analyzer/internal/model"
)

func TestTrend_InsufficientData(t *testing.T) {
	got := Trend(ascending(19, 100, 1))
	if got.Direction != model.TrendInsufficientData {
		t.Errorf("expected insufficient_data, got %s", got.Direction)
	}
	if got.Strength != 0 {
		t.Errorf("expected strength 0, got %.4f", got.Strength)
	}
}

func TestTrend_Directions(t *testing.T) {
	tests := []struct {
		name      string
		closes    []float64
		direction model.TrendDirection
		slope     float64
	}{
		{"bullish", ascending(20, 100, 2), model.TrendBullish, 2},
		{"bearish", ascending(20, 200, -2), model.TrendBearish, -2},
		{"sideways small slope", ascending(20, 100, 0.004), model.TrendSideways, 0.004},
	}
	for _, tt := range tests {
		got := Trend(tt.closes)
		if got.Direction != tt.direction {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.direction, got.Direction)
		}
		if math.Abs(got.Slope-tt.slope) > 1e-6 {
			t.Errorf("%s: expected slope %.4f, got %.6f", tt.name, tt.slope, got.Slope)
		}
		// Perfectly linear series correlate fully.
		if math.Abs(got.Strength-1) > 1e-6 {
			t.Errorf("%s: expected strength 1, got %.6f", tt.name, got.Strength)
		}
	}
}

func TestTrend_FlatSeriesDegeneracy(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 500
	}
	got := Trend(closes)
	if got.Direction != model.TrendSideways {
		t.Errorf("expected sideways, got %s", got.Direction)
	}
	if got.Strength != 0 || got.Slope != 0 {
		t.Errorf("expected zero strength and slope, got %.4f/%.4f", got.Strength, got.Slope)
	}
}

func TestSupportResistance_GlobalExtremes(t *testing.T) {
	closes := ascending(24, 100, 1)
	closes[7] = 55   // global low
	closes[16] = 310 // global high

	support, resistance, ok := SupportResistance(closes)
	if !ok {
		t.Fatal("expected defined levels")
	}
	if support != 55 {
		t.Errorf("expected support 55, got %.4f", support)
	}
	if resistance != 310 {
		t.Errorf("expected resistance 310, got %.4f", resistance)
	}
}

func TestSupportResistance_InsufficientData(t *testing.T) {
	if _, _, ok := SupportResistance(ascending(19, 100, 1)); ok {
		t.Error("expected ok=false below 20 points")
	}
}

func TestSupportResistance_NotBoundedByCurrentPrice(t *testing.T) {
	// A strongly trending series can leave both levels below the latest
	// close; that is the documented semantics.
	closes := ascending(40, 100, 5)
	support, resistance, ok := SupportResistance(closes)
	if !ok {
		t.Fatal("expected defined levels")
	}
	current := closes[len(closes)-1]
	if support != closes[0] {
		t.Errorf("expected support %.2f, got %.4f", closes[0], support)
	}
	if resistance != current {
		t.Errorf("expected resistance %.2f, got %.4f", current, resistance)
	}
}
