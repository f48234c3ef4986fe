package services

import (
	"strings"

	"howyouknow-backend/internal/models"
)

// EvaluatorService compares a submitted answer against a question's
// recorded correct answer. It never fails: a malformed or mismatched
// submission is simply incorrect.
type EvaluatorService struct{}

func NewEvaluatorService() *EvaluatorService {
	return &EvaluatorService{}
}

func (e *EvaluatorService) Evaluate(question *models.Question, submitted models.AnswerValue) bool {
	correct := question.CorrectAnswer

	switch question.Type {
	case models.QuestionTypeMultipleChoice, models.QuestionTypeYesNo:
		if submitted.IsNone() || correct.IsNone() {
			return false
		}
		if submitted.Kind == models.AnswerKindSequence || correct.Kind == models.AnswerKindSequence {
			return false
		}
		// Exact match against the option set, no normalization.
		return submitted.Text == correct.Text

	case models.QuestionTypeRanking, models.QuestionTypeSurvey:
		if submitted.Kind != models.AnswerKindSequence || correct.Kind != models.AnswerKindSequence {
			return false
		}
		if len(submitted.Items) != len(correct.Items) {
			return false
		}
		for i := range submitted.Items {
			if submitted.Items[i] != correct.Items[i] {
				return false
			}
		}
		return true

	case models.QuestionTypeOpen:
		if submitted.IsNone() || correct.IsNone() {
			return false
		}
		return normalizeText(submitted) == normalizeText(correct)
	}

	return false
}

func normalizeText(v models.AnswerValue) string {
	text := v.Text
	if v.Kind == models.AnswerKindSequence {
		text = strings.Join(v.Items, " ")
	}
	return strings.ToLower(strings.TrimSpace(text))
}
