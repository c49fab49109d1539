package task

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/llm"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/metrics"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/record"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/schema"
)

// Completer issues one completion call. *llm.Client satisfies this; tests
// substitute a mock.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Orchestrator runs the task pipeline. One instance serves all task types;
// per-task behavior comes entirely from the Descriptor.
type Orchestrator struct {
	completer Completer
	recorder  *record.Recorder
	logger    *slog.Logger
}

// NewOrchestrator creates an orchestrator over the given collaborators.
func NewOrchestrator(completer Completer, recorder *record.Recorder, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		completer: completer,
		recorder:  recorder,
		logger:    logger,
	}
}

// Handle runs one orchestration: Validating → Prompting → Completing →
// Normalizing → Recording → Responding. Every failure before Responding is
// absorbing; a record-write failure is not a failure of the orchestration.
func (o *Orchestrator) Handle(ctx context.Context, d Descriptor, in Input) (map[string]any, error) {
	started := time.Now()

	// Minimum lengths are in characters, not bytes: Devanagari input is
	// the norm for this domain and runs three bytes per rune.
	text := strings.TrimSpace(in.Text)
	if utf8.RuneCountInString(text) < d.MinInput {
		metrics.TasksTotal.WithLabelValues(string(d.Type), "validation_error").Inc()
		return nil, &ValidationError{Detail: d.TooShort}
	}
	in.Text = text

	raw, err := o.completer.Complete(ctx, llm.Request{
		Provider: d.Provider,
		Model:    d.Model,
		System:   d.System,
		Prompt:   d.BuildPrompt(text),
		WantJSON: !d.FreeText,
	})
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(d.Provider, llmOutcome(err)).Inc()
		metrics.TasksTotal.WithLabelValues(string(d.Type), "service_error").Inc()
		o.logger.Error("Completion failed",
			"task", d.Type,
			"provider", d.Provider,
			"model", d.Model,
			"user_id", in.CallerID,
			"error", err)
		return nil, NewServiceError(err)
	}
	metrics.LLMRequestsTotal.WithLabelValues(d.Provider, "success").Inc()

	var fields map[string]any
	if d.FreeText {
		fields = map[string]any{"ai_response": raw}
	} else {
		fields, err = schema.Normalize(raw, d.Contract)
		if err != nil {
			metrics.TasksTotal.WithLabelValues(string(d.Type), "service_error").Inc()
			o.logger.Error("Completion failed normalization",
				"task", d.Type,
				"model", d.Model,
				"user_id", in.CallerID,
				"completion_len", len(raw),
				"error", err)
			return nil, NewServiceError(err)
		}
	}

	rec := o.recorder.Record(ctx, in.CallerID, d.Collection, d.Document(in, fields))

	resp := d.Respond(in, fields, rec)

	metrics.TasksTotal.WithLabelValues(string(d.Type), "success").Inc()
	metrics.TaskDuration.WithLabelValues(string(d.Type)).Observe(time.Since(started).Seconds())
	o.logger.Info("Task completed",
		"task", d.Type,
		"user_id", in.CallerID,
		"record_id", rec.RecordID,
		"recorded", rec.Recorded,
		"duration_ms", time.Since(started).Milliseconds())

	return resp, nil
}

// llmOutcome labels a completion failure for metrics.
func llmOutcome(err error) string {
	switch {
	case llm.IsConfiguration(err):
		return "config_error"
	case llm.IsEmptyResponse(err):
		return "empty_response"
	case llm.IsTransport(err):
		return "transport_error"
	default:
		return "error"
	}
}
