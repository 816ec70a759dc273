package vision

import (
	"math"

	"presentcoach/internal/analysis"
)

const (
	faceDetectedPercent  = 10.0
	forwardFacingScore   = 60.0
	goodEyeContactScore  = 60.0
	lowEyeContactScore   = 40.0
	goodPostureScore     = 70.0
	gestureLow           = 20.0
	gestureHigh          = 50.0
	majorityNoiseShare   = 0.6
	goodLightingShare    = 0.5
	minGoodBrightness    = 80.0
	maxGoodBrightness    = 200.0
	minGoodContrast      = 30.0
	lowNoiseLaplacian    = 100.0
	highNoiseLaplacian   = 50.0
	postureStdPenalty    = 2.0
	confidenceGestureCap = 50.0
)

// Assessment labels.
const (
	AssessmentGood             = "good"
	AssessmentLowConfidence    = "low_confidence"
	AssessmentNeedsImprovement = "needs_improvement"
	AssessmentAppropriate      = "appropriate"
	AssessmentNeedsAdjustment  = "needs_adjustment"
)

// Aggregate folds sampled frames into the video document. duration is the
// reported video length in seconds.
func Aggregate(stream Stream, duration float64) analysis.Video {
	frames := stream.Frames
	sampled := len(frames)

	var faces, poses, gestures int
	var eyeScores, postureScores []float64
	var lighting, noise, angles []string
	for _, f := range frames {
		if f.Face {
			faces++
			if f.EyeContact != nil && *f.EyeContact > 0 {
				eyeScores = append(eyeScores, *f.EyeContact)
			}
		}
		if f.Pose {
			poses++
			if f.Posture != nil {
				postureScores = append(postureScores, *f.Posture)
			}
		}
		if f.Gesture {
			gestures++
		}
		if q, ok := lightingQuality(f); ok {
			lighting = append(lighting, q)
		}
		if q, ok := noiseLevel(f); ok {
			noise = append(noise, q)
		}
		if f.Face || f.Pose {
			angles = append(angles, cameraAngle(f))
		}
	}

	facePresence := percent(faces, sampled)
	faceDetected := facePresence >= faceDetectedPercent

	video := analysis.Video{
		FaceDetected:          faceDetected,
		PoseLandmarksDetected: poses > 0,
		DurationSeconds:       round2(duration),
		FramesAnalyzed:        sampled,
		FacePresence:          analysis.FacePresence{FramesAnalyzed: sampled},
		QualityMetrics: analysis.QualityMetrics{
			LightingQuality: aggregateLighting(lighting),
			NoiseLevel:      aggregateNoise(noise),
			CameraAngle:     mostCommon(angles),
		},
	}
	if stream.FramesRead > sampled {
		video.FramesAnalyzed = stream.FramesRead
	}
	if faceDetected {
		video.FacePresence.Percentage = analysis.Float(round2(facePresence))
	} else {
		video.FacePresence.Label = analysis.String(analysis.LabelNotEvaluated)
	}
	if p := percent(poses, sampled); p > 0 {
		video.PoseLandmarksPercentage = analysis.Float(round2(p))
	}

	var eyeMean *float64
	if len(eyeScores) > 0 {
		forward := 0
		for _, s := range eyeScores {
			if s > forwardFacingScore {
				forward++
			}
		}
		eyeMean = analysis.Float(mean(eyeScores))
		video.EyeContact = analysis.EyeContact{
			Score:              analysis.Float(round2(*eyeMean)),
			ForwardFacingRatio: analysis.Float(round2(percent(forward, len(eyeScores)))),
			Assessment:         eyeAssessment(*eyeMean),
		}
	} else {
		video.EyeContact = analysis.EyeContact{
			Assessment: analysis.LabelNotEvaluated,
			Label:      analysis.String(analysis.LabelNotEvaluated),
		}
	}

	var postureMean *float64
	if len(postureScores) > 0 {
		postureMean = analysis.Float(mean(postureScores))
		consistency := math.Max(0, 100-stddev(postureScores)*postureStdPenalty)
		video.Posture = analysis.Posture{
			Score:            analysis.Float(round2(*postureMean)),
			ConsistencyScore: analysis.Float(round2(consistency)),
			Assessment:       AssessmentNeedsImprovement,
		}
		if *postureMean > goodPostureScore {
			video.Posture.Assessment = AssessmentGood
		}
	} else {
		video.Posture = analysis.Posture{
			Assessment: analysis.LabelNotEvaluated,
			Label:      analysis.String(analysis.LabelNotEvaluated),
		}
	}

	var gestureFreq *float64
	if sampled > 0 {
		gestureFreq = analysis.Float(percent(gestures, sampled))
		video.Gestures = analysis.Gestures{
			FrequencyPercentage: analysis.Float(round2(*gestureFreq)),
			Assessment:          AssessmentNeedsAdjustment,
		}
		if *gestureFreq >= gestureLow && *gestureFreq <= gestureHigh {
			video.Gestures.Assessment = AssessmentAppropriate
		}
	} else {
		video.Gestures = analysis.Gestures{
			Assessment: analysis.LabelNotEvaluated,
			Label:      analysis.String(analysis.LabelNotEvaluated),
		}
	}

	if faceDetected && eyeMean != nil && postureMean != nil {
		confidence := facePresence*0.3 + *eyeMean*0.3 + *postureMean*0.2
		if gestureFreq != nil {
			confidence += math.Min(*gestureFreq, confidenceGestureCap) * 0.2
		}
		video.ConfidenceEstimate = analysis.Float(round2(confidence))
	}
	return video
}

func eyeAssessment(score float64) string {
	switch {
	case score > goodEyeContactScore:
		return AssessmentGood
	case score < lowEyeContactScore:
		return AssessmentLowConfidence
	default:
		return AssessmentNeedsImprovement
	}
}

func lightingQuality(f Frame) (string, bool) {
	if f.Brightness == nil || f.Contrast == nil {
		return "", false
	}
	b, c := *f.Brightness, *f.Contrast
	if b >= minGoodBrightness && b <= maxGoodBrightness && c > minGoodContrast {
		return "good", true
	}
	return "poor", true
}

func noiseLevel(f Frame) (string, bool) {
	if f.LaplacianVar == nil {
		return "", false
	}
	switch v := *f.LaplacianVar; {
	case v > lowNoiseLaplacian:
		return "low", true
	case v < highNoiseLaplacian:
		return "high", true
	default:
		return "medium", true
	}
}

func cameraAngle(f Frame) string {
	switch {
	case f.Face && f.Pose:
		return "front"
	case f.Face || f.Pose:
		return "partial"
	default:
		return "side"
	}
}

func aggregateLighting(qualities []string) *string {
	if len(qualities) == 0 {
		return nil
	}
	good := 0
	for _, q := range qualities {
		if q == "good" {
			good++
		}
	}
	if float64(good)/float64(len(qualities)) >= goodLightingShare {
		return analysis.String("good")
	}
	return analysis.String("poor")
}

// aggregateNoise returns the dominant level, or "medium" when no level holds
// a 60% share.
func aggregateNoise(levels []string) *string {
	top := mostCommon(levels)
	if top == nil {
		return nil
	}
	count := 0
	distinct := map[string]bool{}
	for _, l := range levels {
		distinct[l] = true
		if l == *top {
			count++
		}
	}
	if len(distinct) > 1 && float64(count)/float64(len(levels)) < majorityNoiseShare {
		return analysis.String("medium")
	}
	return top
}

// mostCommon returns the most frequent value, ties going to the value seen
// first.
func mostCommon(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	counts := map[string]int{}
	for _, v := range values {
		counts[v]++
	}
	best := values[0]
	for _, v := range values {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return analysis.String(best)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the population standard deviation.
func stddev(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
