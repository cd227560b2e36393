package assistant

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pedro-r-marques/devops-tutor/pkg/workflow"
)

var ErrNotFound = errors.New("analysis not found")

// Analysis is the record kept for every visualized workflow document.
type Analysis struct {
	ID       uuid.UUID        `json:"id"`
	Created  time.Time        `json:"created"`
	Workflow *workflow.Result `json:"workflow"`
	// Job names in dependency order
	Order         []string `json:"order,omitempty"`
	Visualization string   `json:"visualization"`
	Explanation   string   `json:"explanation"`
	// Set when the jobs contain a dependency cycle that was tolerated
	Warning string `json:"warning,omitempty"`
}

// AnalysisStore persists analyses.
type AnalysisStore interface {
	Save(analysis *Analysis) error
	Get(id uuid.UUID) (*Analysis, error)
	// List returns the most recent analyses first.
	List(limit int) ([]*Analysis, error)
	// ListByWorkflow is List restricted to one workflow name.
	ListByWorkflow(name string, limit int) ([]*Analysis, error)
}

// MessageBus delivers analysis events to a queue.
type MessageBus interface {
	SendMsg(qname string, correlationId string, msg map[string]json.RawMessage) error
}
