package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"petstore-verify/internal/assertion"
	"petstore-verify/internal/infra/probe"
	"petstore-verify/internal/observability/logging"
	"petstore-verify/internal/observability/metrics"
	"petstore-verify/internal/observability/requestid"
	"petstore-verify/internal/observability/tracing"
)

// CaseResult is the outcome of one case.
// Tree and Evaluation are nil/zero when Err is set.
type CaseResult struct {
	Name       string
	RequestID  string
	Tree       *assertion.Node
	Evaluation assertion.Evaluation
	Err        error
	Duration   time.Duration
}

// Passed reports whether the case ran and every leaf passed.
func (r CaseResult) Passed() bool {
	return r.Err == nil && r.Tree != nil && r.Evaluation.Summary().OK()
}

// Outcome returns the metrics label of the result.
func (r CaseResult) Outcome() string {
	switch {
	case r.Err != nil:
		return metrics.OutcomeError
	case r.Passed():
		return metrics.OutcomePassed
	default:
		return metrics.OutcomeFailed
	}
}

// Runner executes cases with bounded concurrency.
type Runner struct {
	env     Env
	workers int
	logger  *slog.Logger
}

// NewRunner creates a Runner. workers below 1 run cases one at a time.
// A nil logger uses slog.Default.
func NewRunner(env Env, workers int, logger *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{env: env, workers: workers, logger: logger}
}

// Run executes cases and returns their results in input order.
//
// Read-only cases run first, then mutating cases; within each phase up to
// workers cases run concurrently. A case error never stops other cases.
func (r *Runner) Run(ctx context.Context, cases []Case) []CaseResult {
	results := make([]CaseResult, len(cases))

	var readOnly, mutating []int
	for i, c := range cases {
		if c.Mutating {
			mutating = append(mutating, i)
		} else {
			readOnly = append(readOnly, i)
		}
	}

	for _, phase := range [][]int{readOnly, mutating} {
		var eg errgroup.Group
		eg.SetLimit(r.workers)
		for _, i := range phase {
			eg.Go(func() error {
				results[i] = r.runCase(ctx, cases[i])
				return nil
			})
		}
		_ = eg.Wait()
	}

	return results
}

func (r *Runner) runCase(ctx context.Context, c Case) CaseResult {
	start := time.Now()
	ctx, span := tracing.GetTracer().Start(ctx, "case "+c.Name)
	defer span.End()

	ctx = requestid.WithRequestID(ctx, requestid.New())
	logger := logging.WithRequestID(ctx, r.logger).With(slog.String("case", c.Name))
	ctx = logging.WithLogger(ctx, logger)

	session := r.env.Client.NewSession(ctx)
	result := CaseResult{Name: c.Name, RequestID: session.RequestID()}

	logger.Info("case started")
	tree, err := safeRun(ctx, c, r.env, session)
	result.Duration = time.Since(start)

	if err != nil {
		result.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordCase(metrics.OutcomeError, result.Duration)
		logger.Error("case aborted",
			slog.Duration("duration", result.Duration),
			slog.Any("error", err))
		return result
	}

	result.Tree = tree
	result.Evaluation = tree.EvaluateTree()
	summary := result.Evaluation.Summary()
	metrics.RecordAssertions(summary.Passed, summary.Failed)
	metrics.RecordCase(result.Outcome(), result.Duration)
	span.SetAttributes(
		attribute.String("case.outcome", result.Outcome()),
		attribute.Int("case.failures", summary.Failed),
	)

	logger.Info("case finished",
		slog.String("outcome", result.Outcome()),
		slog.Int("checks", summary.Total),
		slog.Int("failures", summary.Failed),
		slog.Duration("duration", result.Duration))
	return result
}

// safeRun turns a panicking case into a case error.
func safeRun(ctx context.Context, c Case, env Env, s *probe.Session) (tree *assertion.Node, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Case: c.Name, Value: rec}
		}
	}()
	if c.Run == nil {
		return nil, fmt.Errorf("case %s: %w", c.Name, ErrNoRunFunc)
	}
	tree, err = c.Run(ctx, env, s)
	if err == nil && tree == nil {
		err = fmt.Errorf("case %s: %w", c.Name, ErrNoTree)
	}
	return tree, err
}
