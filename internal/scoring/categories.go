package scoring

import "presentcoach/internal/analysis"

const (
	reasonNoSpeech            = "No speech detected"
	reasonMissingVoice        = "Missing evidence for one or more voice metrics"
	reasonMissingContent      = "Missing evidence for one or more content metrics"
	reasonNoFace              = "No face detected - insufficient data for confidence evaluation"
	reasonNoPose              = "Pose landmarks not detected - posture and gesture evaluation unavailable"
	reasonMissingConfidence   = "Missing evidence for one or more confidence metrics"
	reasonNoEngagementSignal  = "No speech and no face detected - insufficient data for engagement evaluation"
	reasonNoEngagementMetrics = "No valid engagement components - missing audio energy or facial motion evidence"
)

// ScoreVoiceDelivery scores speaking rate, filler usage, pitch, and volume.
func ScoreVoiceDelivery(audio analysis.Audio, ev analysis.Evidence) CategoryScore {
	wpm := audio.SpeakingSpeed.WPM
	filler := audio.FillerWords.Percentage
	pitch := audio.Pitch.StabilityScore
	volStability := audio.Volume.StabilityScore
	volLevel := audio.Volume.LevelScore

	passthrough := map[string]*float64{
		"wpm_score":        nil,
		"filler_score":     nil,
		"pitch_stability":  pitch,
		"volume_stability": volStability,
		"volume_level":     volLevel,
	}
	if !ev.SpeechDetected {
		return skipped(WeightVoiceDelivery, labelNotAvailable, reasonNoSpeech, passthrough)
	}
	if wpm == nil || filler == nil || pitch == nil || volStability == nil || volLevel == nil {
		return skipped(WeightVoiceDelivery, labelInsufficientData, reasonMissingVoice, passthrough)
	}

	wpmScore := WPMScore(*wpm)
	fillerScore := FillerScore(*filler)
	overall := wpmScore*0.3 + fillerScore*0.3 + *pitch*0.2 + *volStability*0.1 + *volLevel*0.1

	return scored(WeightVoiceDelivery, overall, map[string]*float64{
		"wpm_score":        ptr(wpmScore),
		"filler_score":     ptr(fillerScore),
		"pitch_stability":  ptr(*pitch),
		"volume_stability": ptr(*volStability),
		"volume_level":     ptr(*volLevel),
	})
}

// ScoreContentQuality scores grammar, repetition, and structure.
func ScoreContentQuality(text analysis.Text, ev analysis.Evidence) CategoryScore {
	grammar := text.Grammar.Score
	repetition := text.Repetition.Score
	structure := text.Structure.Score

	components := map[string]*float64{
		"grammar_score":    grammar,
		"repetition_score": repetition,
		"structure_score":  structure,
	}
	if !ev.SpeechDetected {
		return skipped(WeightContentQuality, labelNotAvailable, reasonNoSpeech, components)
	}
	if grammar == nil || repetition == nil || structure == nil {
		return skipped(WeightContentQuality, labelInsufficientData, reasonMissingContent, components)
	}

	overall := *grammar*0.4 + *repetition*0.3 + *structure*0.3
	return scored(WeightContentQuality, overall, map[string]*float64{
		"grammar_score":    ptr(*grammar),
		"repetition_score": ptr(*repetition),
		"structure_score":  ptr(*structure),
	})
}

// ScoreConfidence scores face presence, eye contact, posture, and gestures.
// It is skipped whenever the face or pose landmarks are missing.
func ScoreConfidence(video analysis.Video, ev analysis.Evidence) CategoryScore {
	face := video.FacePresence.Percentage
	eye := video.EyeContact.Score
	posture := video.Posture.Score
	gesture := video.Gestures.FrequencyPercentage

	if !ev.FaceDetected {
		return skipped(WeightConfidenceBodyLanguage, labelNotEvaluated, reasonNoFace, map[string]*float64{
			"face_presence": nil,
			"eye_contact":   nil,
			"posture":       nil,
			"gesture_score": nil,
		})
	}
	if !ev.PoseLandmarksDetected {
		return skipped(WeightConfidenceBodyLanguage, labelNotEvaluated, reasonNoPose, map[string]*float64{
			"face_presence": face,
			"eye_contact":   eye,
			"posture":       nil,
			"gesture_score": nil,
		})
	}
	if face == nil || eye == nil || posture == nil || gesture == nil {
		return skipped(WeightConfidenceBodyLanguage, labelInsufficientData, reasonMissingConfidence, map[string]*float64{
			"face_presence": face,
			"eye_contact":   eye,
			"posture":       posture,
			"gesture_score": nil,
		})
	}

	gestureScore := GestureScore(*gesture)
	overall := *face*0.25 + *eye*0.35 + *posture*0.25 + gestureScore*0.15
	return scored(WeightConfidenceBodyLanguage, overall, map[string]*float64{
		"face_presence": ptr(*face),
		"eye_contact":   ptr(*eye),
		"posture":       ptr(*posture),
		"gesture_score": ptr(gestureScore),
	})
}

type weighted struct {
	value  float64
	weight float64
}

// ScoreEngagement blends volume variation (needs speech) with gesture
// engagement and eye contact (need a face). Weights 0.4/0.4/0.2 are
// renormalized over the components that are available.
func ScoreEngagement(audio analysis.Audio, video analysis.Video, ev analysis.Evidence) CategoryScore {
	if !ev.SpeechDetected && !ev.FaceDetected {
		return skipped(WeightEngagement, labelNotEvaluated, reasonNoEngagementSignal, map[string]*float64{
			"volume_variation":   nil,
			"gesture_engagement": nil,
			"eye_contact":        nil,
		})
	}

	var volumeVariation, gestureEngagement, eyeContact *float64
	if ev.SpeechDetected && audio.Volume.StdDB != nil {
		volumeVariation = ptr(VolumeVariationScore(*audio.Volume.StdDB))
	}
	if ev.FaceDetected && video.Gestures.FrequencyPercentage != nil {
		gestureEngagement = ptr(GestureEngagementScore(*video.Gestures.FrequencyPercentage))
	}
	if ev.FaceDetected && video.EyeContact.Score != nil {
		eyeContact = ptr(*video.EyeContact.Score)
	}

	components := map[string]*float64{
		"volume_variation":   volumeVariation,
		"gesture_engagement": gestureEngagement,
		"eye_contact":        eyeContact,
	}

	var parts []weighted
	if volumeVariation != nil {
		parts = append(parts, weighted{*volumeVariation, 0.4})
	}
	if gestureEngagement != nil {
		parts = append(parts, weighted{*gestureEngagement, 0.4})
	}
	if eyeContact != nil {
		parts = append(parts, weighted{*eyeContact, 0.2})
	}
	if len(parts) == 0 {
		return skipped(WeightEngagement, labelInsufficientData, reasonNoEngagementMetrics, components)
	}

	var total float64
	for _, p := range parts {
		total += p.weight
	}
	var overall float64
	for _, p := range parts {
		overall += p.value * (p.weight / total)
	}
	return scored(WeightEngagement, overall, components)
}
