package eligibility_test

import (
	"strings"
	"testing"

	"presentcoach/internal/eligibility"
)

func TestCheckEligible(t *testing.T) {
	gate := eligibility.NewGate(eligibility.DefaultThresholds())
	res := gate.Check(45.2, true, 120, 1350)
	if !res.Eligible {
		t.Fatalf("expected eligible, warnings=%v", res.Warnings)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", res.Warnings)
	}
	d := res.Details
	if !d.MeetsDurationRequirement || !d.MeetsAudioRequirement || !d.MeetsSpeechRequirement || !d.MeetsFrameRequirement {
		t.Fatalf("expected all requirements met: %+v", d)
	}
	if d.WordCount != 120 || d.TotalFrames != 1350 {
		t.Fatalf("details did not record measurements: %+v", d)
	}
}

func TestCheckReportsEveryFailedRule(t *testing.T) {
	gate := eligibility.NewGate(eligibility.Thresholds{})
	res := gate.Check(8.04, false, 3, 20)
	if res.Eligible {
		t.Fatal("expected ineligible")
	}
	want := []string{
		"Video duration (8.0s) is less than minimum required (10.0s)",
		"No audio track detected in video",
		"Insufficient speech detected (3 words, minimum 10 required)",
		"Insufficient video frames (20 frames, minimum 50 required)",
	}
	if len(res.Warnings) != len(want) {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	for i := range want {
		if res.Warnings[i] != want[i] {
			t.Fatalf("warning %d = %q, want %q", i, res.Warnings[i], want[i])
		}
	}
}

func TestCheckBoundaries(t *testing.T) {
	gate := eligibility.NewGate(eligibility.DefaultThresholds())
	res := gate.Check(10.0, true, 10, 50)
	if !res.Eligible {
		t.Fatalf("thresholds are inclusive, got warnings %v", res.Warnings)
	}
	res = gate.Check(9.99, true, 9, 49)
	if res.Eligible || len(res.Warnings) != 3 {
		t.Fatalf("expected three warnings just below thresholds, got %v", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "10.0s") {
		t.Fatalf("unexpected duration warning %q", res.Warnings[0])
	}
}

func TestGateHelpers(t *testing.T) {
	gate := eligibility.NewGate(eligibility.Thresholds{MinDurationSeconds: 20, MinWordCount: 25})
	if gate.Thresholds().MinFrames != 50 {
		t.Fatalf("expected default frame threshold, got %d", gate.Thresholds().MinFrames)
	}
	if gate.DurationOK(19.9) || !gate.DurationOK(20) {
		t.Fatal("DurationOK does not honour custom threshold")
	}
	if gate.SpeechDetected(24) || !gate.SpeechDetected(25) {
		t.Fatal("SpeechDetected does not honour custom threshold")
	}
}
