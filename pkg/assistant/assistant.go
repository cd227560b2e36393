package assistant

//go:generate mockgen -source assistant.go -destination ./mock/assistant.go

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pedro-r-marques/devops-tutor/pkg/diagnose"
	"github.com/pedro-r-marques/devops-tutor/pkg/workflow"
	"github.com/pedro-r-marques/devops-tutor/pkg/yamlcheck"
)

const (
	DefaultEventQueue   = "devops-tutor-events"
	DefaultHistoryLimit = 20
)

type Assistant interface {
	// CI/CD workflows
	Visualize(content, lang string) (*Analysis, error)
	Sample(name string) (workflow.Sample, error)
	ListSamples() []string

	// Analysis history
	ListAnalyses(workflowName string, limit int) ([]*Analysis, error)
	GetAnalysis(id uuid.UUID) (*Analysis, error)

	ValidateYAML(content string) *yamlcheck.Report
	ExplainError(errorLog, lang string) diagnose.Diagnosis
}

type Options struct {
	// Reject workflows with a dependency cycle instead of ordering them
	// leniently.
	StrictCycles bool
	// Queue that receives analysis events
	EventQueue string
}

type assistant struct {
	opts    Options
	samples *workflow.SampleSet
	store   AnalysisStore
	mbus    MessageBus
}

// NewAssistant builds the service. store and mbus may be nil.
func NewAssistant(samples *workflow.SampleSet, store AnalysisStore, mbus MessageBus, opts Options) Assistant {
	if samples == nil {
		samples = workflow.NewSampleSet()
	}
	if opts.EventQueue == "" {
		opts.EventQueue = DefaultEventQueue
	}
	return &assistant{
		opts:    opts,
		samples: samples,
		store:   store,
		mbus:    mbus,
	}
}

func jsonMustMarshal(v interface{}) json.RawMessage {
	result, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return result
}

func makeEvent(analysis *Analysis) (string, map[string]json.RawMessage) {
	msg := map[string]json.RawMessage{
		"id":      jsonMustMarshal(analysis.ID.String()),
		"created": jsonMustMarshal(analysis.Created),
		"success": jsonMustMarshal(analysis.Workflow.Success),
	}
	if analysis.Workflow.Success {
		msg["workflow"] = jsonMustMarshal(analysis.Workflow.Name)
		msg["order"] = jsonMustMarshal(analysis.Order)
	} else {
		msg["error"] = jsonMustMarshal(analysis.Workflow.Error)
	}
	if analysis.Warning != "" {
		msg["warning"] = jsonMustMarshal(analysis.Warning)
	}
	return analysis.ID.String(), msg
}

func (a *assistant) analyze(content string) (*workflow.Result, []string, string) {
	result := workflow.Parse(content)
	if !result.Success {
		return result, nil, ""
	}

	var warning string
	if cycle := workflow.FindCycle(result.Jobs); cycle != nil {
		path := strings.Join(cycle, " -> ")
		if a.opts.StrictCycles {
			return &workflow.Result{
				Error: fmt.Sprintf("Invalid workflow: %v: %s", workflow.ErrCycle, path),
			}, nil, ""
		}
		warning = fmt.Sprintf("%v ignored: %s", workflow.ErrCycle, path)
	}
	return result, workflow.Order(result.Jobs), warning
}

func (a *assistant) Visualize(content, lang string) (*Analysis, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	result, order, warning := a.analyze(content)
	analysis := &Analysis{
		ID:            id,
		Created:       time.Now().UTC(),
		Workflow:      result,
		Order:         order,
		Visualization: workflow.Render(result),
		Explanation:   workflow.Explain(result, lang),
		Warning:       warning,
	}

	log.Debug().
		Str("id", id.String()).
		Bool("success", result.Success).
		Int("jobs", len(result.Jobs)).
		Msg("visualize workflow")

	if a.store != nil {
		if err := a.store.Save(analysis); err != nil {
			log.Error().Err(err).Str("id", id.String()).Msg("store analysis")
		}
	}
	if a.mbus != nil {
		correlationId, msg := makeEvent(analysis)
		if err := a.mbus.SendMsg(a.opts.EventQueue, correlationId, msg); err != nil {
			log.Error().Err(err).Str("id", id.String()).Msg("publish analysis event")
		}
	}
	return analysis, nil
}

func (a *assistant) Sample(name string) (workflow.Sample, error) {
	return a.samples.Get(name)
}

func (a *assistant) ListSamples() []string {
	return a.samples.Names()
}

// ListAnalyses returns the most recent analyses, restricted to one workflow
// when workflowName is set.
func (a *assistant) ListAnalyses(workflowName string, limit int) ([]*Analysis, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if a.store == nil {
		return []*Analysis{}, nil
	}
	if workflowName != "" {
		return a.store.ListByWorkflow(workflowName, limit)
	}
	return a.store.List(limit)
}

func (a *assistant) GetAnalysis(id uuid.UUID) (*Analysis, error) {
	if a.store == nil {
		return nil, ErrNotFound
	}
	return a.store.Get(id)
}

func (a *assistant) ValidateYAML(content string) *yamlcheck.Report {
	report := yamlcheck.Validate(content)
	log.Debug().
		Bool("valid", report.Valid).
		Str("kind", report.Kind).
		Msg("validate yaml")
	return report
}

func (a *assistant) ExplainError(errorLog, lang string) diagnose.Diagnosis {
	d := diagnose.Explain(errorLog, lang)
	log.Debug().
		Str("pattern", d.Pattern).
		Msg("explain error")
	return d
}
