package workflow

import (
	"github.com/careerdev/jobagent/internal/ai"
	"github.com/careerdev/jobagent/internal/jobboard"
	"github.com/careerdev/jobagent/internal/tools"
)

// State is the mutable record threaded through one run of the graph. Every
// run owns a fresh instance; nothing is shared between runs.
type State struct {
	UserID   string
	TaskType TaskType
	Input    map[string]any

	CVResult        *ai.CVAnalysis
	Jobs            jobboard.Listings
	AnalyzedJobs    []AnalyzedJob
	SearchReport    *jobboard.Result
	AnalysisReport  *AnalysisReport
	MatchResults    *MatchResults
	Recommendations []ai.SkillRecommendation
	ToolResult      *tools.Result

	// Err is terminal for the run once set: downstream steps skip their
	// work and the formatting step reflects it as a failed status.
	Err string

	// FinalOutput is populated exactly once, by output formatting or by
	// error handling.
	FinalOutput *Envelope
}

func newState(userID string, taskType TaskType, input map[string]any) *State {
	if input == nil {
		input = map[string]any{}
	}

	return &State{
		UserID:   userID,
		TaskType: taskType,
		Input:    input,
	}
}

// AnalyzedJob pairs a listing with its extraction result. The listing fields
// stay at the top level of the JSON shape.
type AnalyzedJob struct {
	*jobboard.Listing
	Analysis *ai.JobAnalysis `json:"analysis,omitempty"`
}

// AnalysisReport timestamps the newest analysis a chain produced.
type AnalysisReport struct {
	CVAnalysis  *ai.CVAnalysis `json:"cv_analysis,omitempty"`
	JobAnalysis []AnalyzedJob  `json:"job_analysis,omitempty"`
	Timestamp   string         `json:"timestamp"`
}

// MatchResults carries the scored matches of one matching run, ordered by
// overall score descending.
type MatchResults struct {
	Matches   []ai.JobMatch `json:"matches"`
	CVID      string        `json:"cv_id"`
	JobIDs    []string      `json:"job_ids"`
	Timestamp string        `json:"timestamp"`
}
