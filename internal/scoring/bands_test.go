package scoring_test

import (
	"testing"

	"presentcoach/internal/scoring"
)

func TestWPMScoreBands(t *testing.T) {
	tests := []struct {
		wpm  float64
		want float64
	}{
		{140, 100}, {120, 100}, {160, 100},
		{110, 80}, {170, 80}, {180, 80},
		{90, 60}, {190, 60}, {200, 60},
		{79.9, 40}, {210, 40}, {0, 40},
	}
	for _, tt := range tests {
		if got := scoring.WPMScore(tt.wpm); got != tt.want {
			t.Errorf("WPMScore(%v) = %v, want %v", tt.wpm, got, tt.want)
		}
	}
}

func TestFillerScoreBands(t *testing.T) {
	tests := []struct {
		percent float64
		want    float64
	}{
		{0, 100}, {1, 100}, {1.99, 100},
		{2, 80}, {4.9, 80},
		{5, 60}, {9.9, 60},
		{10, 40}, {35, 40},
	}
	for _, tt := range tests {
		if got := scoring.FillerScore(tt.percent); got != tt.want {
			t.Errorf("FillerScore(%v) = %v, want %v", tt.percent, got, tt.want)
		}
	}
}

func TestGestureScoreBands(t *testing.T) {
	tests := []struct {
		freq float64
		want float64
	}{
		{35, 100}, {20, 100}, {50, 100},
		{15, 70}, {10, 70}, {55, 70}, {60, 70},
		{5, 50}, {61, 50}, {90, 50},
	}
	for _, tt := range tests {
		if got := scoring.GestureScore(tt.freq); got != tt.want {
			t.Errorf("GestureScore(%v) = %v, want %v", tt.freq, got, tt.want)
		}
	}
}

func TestEngagementBands(t *testing.T) {
	if got := scoring.GestureEngagementScore(15); got != 80 {
		t.Errorf("GestureEngagementScore(15) = %v, want 80", got)
	}
	if got := scoring.GestureEngagementScore(55); got != 60 {
		t.Errorf("GestureEngagementScore(55) = %v, want 60", got)
	}
	for std, want := range map[float64]float64{5: 100, 3: 100, 8: 100, 2: 70, 10: 70, 0.5: 50, 15: 50} {
		if got := scoring.VolumeVariationScore(std); got != want {
			t.Errorf("VolumeVariationScore(%v) = %v, want %v", std, got, want)
		}
	}
}

func TestGradeBands(t *testing.T) {
	tests := []struct {
		score  float64
		grade  string
		rating string
	}{
		{95, "Excellent", "A+"},
		{90, "Excellent", "A+"},
		{85, "Very Good", "A"},
		{70, "Good", "B"},
		{60, "Fair", "C"},
		{59.99, "Needs Improvement", "D"},
	}
	for _, tt := range tests {
		grade, rating := scoring.Grade(tt.score)
		if grade != tt.grade || rating != tt.rating {
			t.Errorf("Grade(%v) = %s/%s, want %s/%s", tt.score, grade, rating, tt.grade, tt.rating)
		}
	}
}
