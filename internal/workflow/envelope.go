package workflow

import (
	"time"

	"github.com/careerdev/jobagent/internal/ai"
	"github.com/careerdev/jobagent/internal/jobboard"
	"github.com/careerdev/jobagent/internal/tools"
)

// Status reports whether a run completed or failed.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Envelope is the uniform result returned to callers. Exactly one of the
// task-specific payload groups is populated, selected by the task type.
type Envelope struct {
	TaskType      TaskType `json:"task_type"`
	UserID        string   `json:"user_id"`
	Timestamp     string   `json:"timestamp"`
	ExecutionTime float64  `json:"execution_time"`
	Status        Status   `json:"status"`
	Error         string   `json:"error,omitempty"`

	CVAnalysis      *ai.CVAnalysis           `json:"cv_analysis,omitempty"`
	Analysis        *AnalysisReport          `json:"analysis,omitempty"`
	Jobs            []AnalyzedJob            `json:"jobs,omitempty"`
	SearchResults   *jobboard.Result         `json:"search_results,omitempty"`
	Matches         *MatchResults            `json:"matches,omitempty"`
	Recommendations []ai.SkillRecommendation `json:"recommendations,omitempty"`
	ToolResults     *tools.Result            `json:"tool_results,omitempty"`
}

// failedEnvelope is the minimal shape produced by the error handling step and
// by the engine when a run escapes the graph entirely.
func failedEnvelope(s *State, message string) *Envelope {
	if message == "" {
		message = "Unknown error"
	}

	return &Envelope{
		TaskType:  s.TaskType,
		UserID:    s.UserID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    StatusFailed,
		Error:     message,
	}
}
