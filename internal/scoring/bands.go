package scoring

// WPMScore bands speaking rate: [120,160] is ideal, each 20 WPM step away
// from it costs 20 points down to a floor of 40.
func WPMScore(wpm float64) float64 {
	switch {
	case wpm >= 120 && wpm <= 160:
		return 100
	case (wpm >= 100 && wpm < 120) || (wpm > 160 && wpm <= 180):
		return 80
	case (wpm >= 80 && wpm < 100) || (wpm > 180 && wpm <= 200):
		return 60
	default:
		return 40
	}
}

// FillerScore bands the percentage of words that are fillers.
func FillerScore(percent float64) float64 {
	switch {
	case percent < 2:
		return 100
	case percent < 5:
		return 80
	case percent < 10:
		return 60
	default:
		return 40
	}
}

// GestureScore bands the percentage of frames showing hand gestures for the
// confidence category.
func GestureScore(frequency float64) float64 {
	switch {
	case frequency >= 20 && frequency <= 50:
		return 100
	case (frequency >= 10 && frequency < 20) || (frequency > 50 && frequency <= 60):
		return 70
	default:
		return 50
	}
}

// GestureEngagementScore bands gesture frequency for the engagement category.
func GestureEngagementScore(frequency float64) float64 {
	switch {
	case frequency >= 20 && frequency <= 50:
		return 100
	case frequency >= 10 && frequency < 20:
		return 80
	default:
		return 60
	}
}

// VolumeVariationScore bands loudness variation (dB standard deviation);
// moderate variation reads as engaged delivery.
func VolumeVariationScore(stdDB float64) float64 {
	switch {
	case stdDB >= 3 && stdDB <= 8:
		return 100
	case (stdDB >= 1 && stdDB < 3) || (stdDB > 8 && stdDB <= 12):
		return 70
	default:
		return 50
	}
}

// Grade maps a final score to its grade and rating.
func Grade(score float64) (grade, rating string) {
	switch {
	case score >= 90:
		return "Excellent", "A+"
	case score >= 80:
		return "Very Good", "A"
	case score >= 70:
		return "Good", "B"
	case score >= 60:
		return "Fair", "C"
	default:
		return "Needs Improvement", "D"
	}
}
