package grading

import "github.com/Mihailob5017/codegames/internal/domain"

// maskHidden returns a copy of result with the data of hidden cases removed
func maskHidden(result *domain.GradingResult) *domain.GradingResult {
	masked := *result
	masked.TestResults = make([]domain.TestCaseResult, len(result.TestResults))
	copy(masked.TestResults, result.TestResults)
	for i := range masked.TestResults {
		if masked.TestResults[i].Hidden {
			maskCase(&masked.TestResults[i])
		}
	}
	return &masked
}

func maskCase(r *domain.TestCaseResult) {
	r.Input = ""
	r.ExpectedOutput = ""
	r.ActualOutput = nil
}
