package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stepFunc func(ctx context.Context, s *State)

// Engine drives the workflow graph: an enum-keyed step table plus the static
// transition set, executed strictly sequentially for one run.
type Engine struct {
	deps   Deps
	steps  map[StepID]stepFunc
	logger *zap.Logger
}

func NewEngine(deps Deps) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		deps:   deps,
		logger: logger,
	}

	e.steps = map[StepID]stepFunc{
		StepValidate:         e.validateInput,
		StepCVAnalysis:       e.analyzeCV,
		StepJobSearch:        e.searchJobs,
		StepJobAnalysis:      e.analyzeJobs,
		StepMatching:         e.calculateMatches,
		StepRecommendations:  e.generateRecommendations,
		StepToolIntegration:  e.integrateTool,
		StepOutputFormatting: e.formatOutput,
		StepErrorHandling:    e.handleError,
	}

	return e
}

// Run executes the graph for one task. It never panics: failures inside the
// graph land in the envelope, and so does anything escaping a step. The
// execution time is stamped by the engine, never by steps.
func (e *Engine) Run(ctx context.Context, userID string, taskType TaskType, input map[string]any) (out *Envelope) {
	start := time.Now()

	logger := e.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("task_type", string(taskType)),
	)

	state := newState(userID, taskType, input)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("workflow run panicked", zap.Any("panic", r))
			out = failedEnvelope(state, fmt.Sprint(r))
		}
		if out == nil {
			out = failedEnvelope(state, "workflow produced no output")
		}
		out.ExecutionTime = time.Since(start).Seconds()

		if out.Status == StatusFailed {
			logger.Warn("workflow failed",
				zap.String("error", out.Error),
				zap.Float64("execution_time", out.ExecutionTime),
			)
			return
		}
		logger.Info("workflow completed", zap.Float64("execution_time", out.ExecutionTime))
	}()

	logger.Info("workflow started", zap.String("user_id", userID))

	e.steps[StepValidate](ctx, state)

	// The router runs once. After it the chain follows static edges until a
	// terminal step has produced the output.
	for step := Route(state); step != StepEnd; step = transitions[step] {
		logger.Debug("executing step", zap.String("step_id", string(step)))
		e.steps[step](ctx, state)
	}

	return state.FinalOutput
}
