package services

const (
	// ScoringModeFlat awards 100 points for a correct first attempt and
	// nothing otherwise; hints and retries are disabled.
	ScoringModeFlat = "flat"

	// ScoringModeModifierAware discounts correct answers that used a hint
	// and charges a penalty for a used retry.
	ScoringModeModifierAware = "modifier_aware"
)

const (
	pointsCorrect     = 100
	pointsCorrectHint = 50
	pointsRetryMiss   = -5
)

type ScoringService struct {
	mode string
}

func NewScoringService(mode string) *ScoringService {
	return &ScoringService{mode: mode}
}

func (s *ScoringService) Mode() string {
	return s.mode
}

// Points is a pure function of the final attempt's outcome. The retry
// penalty applies only when the retry itself also missed; a correct
// retry scores through the correct branches.
func (s *ScoringService) Points(isCorrect, hintUsed, retryUsed bool) int {
	if s.mode == ScoringModeFlat {
		if isCorrect {
			return pointsCorrect
		}
		return 0
	}

	if !isCorrect {
		if retryUsed {
			return pointsRetryMiss
		}
		return 0
	}
	if hintUsed {
		return pointsCorrectHint
	}
	return pointsCorrect
}
