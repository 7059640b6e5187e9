package workflow

import (
	"fmt"
	"strings"
)

// TaskType selects which chain of the graph a run executes.
type TaskType string

const (
	TaskCVAnalysis      TaskType = "cv_analysis"
	TaskJobSearch       TaskType = "job_search"
	TaskMatching        TaskType = "matching"
	TaskRecommendations TaskType = "recommendations"
	TaskExternalTool    TaskType = "external_tool"
)

// TaskTypes lists the supported task types in a stable order.
func TaskTypes() []TaskType {
	return []TaskType{
		TaskCVAnalysis,
		TaskJobSearch,
		TaskMatching,
		TaskRecommendations,
		TaskExternalTool,
	}
}

// ParseTaskType maps a user-supplied string onto a known task type.
func ParseTaskType(value string) (TaskType, error) {
	candidate := TaskType(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range TaskTypes() {
		if candidate == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown task type: %s", value)
}
