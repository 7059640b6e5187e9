package workflow

// StepID names one node of the workflow graph.
type StepID string

const (
	StepValidate         StepID = "input_validation"
	StepCVAnalysis       StepID = "cv_analysis"
	StepJobSearch        StepID = "job_search"
	StepJobAnalysis      StepID = "job_analysis"
	StepMatching         StepID = "matching"
	StepRecommendations  StepID = "recommendation_generation"
	StepToolIntegration  StepID = "tool_integration"
	StepOutputFormatting StepID = "output_formatting"
	StepErrorHandling    StepID = "error_handling"
	StepEnd              StepID = "end"
)

// transitions is the static edge set of the graph. The router decides only
// the edge out of validation; every other transition is fixed.
var transitions = map[StepID]StepID{
	StepCVAnalysis:       StepOutputFormatting,
	StepJobSearch:        StepJobAnalysis,
	StepJobAnalysis:      StepOutputFormatting,
	StepMatching:         StepRecommendations,
	StepRecommendations:  StepOutputFormatting,
	StepToolIntegration:  StepOutputFormatting,
	StepOutputFormatting: StepEnd,
	StepErrorHandling:    StepEnd,
}

// Route picks the task-entry step for a validated state. It is consulted
// exactly once per run: an error set by a later step does not reroute the
// chain, it flows forward to output formatting.
func Route(s *State) StepID {
	if s.Err != "" {
		return StepErrorHandling
	}

	switch s.TaskType {
	case TaskCVAnalysis:
		return StepCVAnalysis
	case TaskJobSearch:
		return StepJobSearch
	case TaskMatching:
		return StepMatching
	case TaskRecommendations:
		return StepRecommendations
	case TaskExternalTool:
		return StepToolIntegration
	default:
		return StepErrorHandling
	}
}
