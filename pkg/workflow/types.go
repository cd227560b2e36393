package workflow

import "errors"

const (
	DefaultName   = "Workflow"
	DefaultRunsOn = "ubuntu-latest"
)

var (
	ErrNoJobs        = errors.New("Invalid workflow: No jobs found")
	ErrCycle         = errors.New("dependency cycle")
	ErrUnknownSample = errors.New("sample not found")
)

type Job struct {
	// Name is the key of the job in the jobs mapping
	Name string `json:"name"`
	// Label of the runner the job targets ("runs-on")
	RunsOn string `json:"runs_on"`
	// Names of the jobs that must run first
	Needs []string `json:"needs"`
	// Number of entries in the job's step list
	Steps int `json:"steps"`
}

// Result is the outcome of parsing a workflow document. When Success is
// false only Error is set.
type Result struct {
	Success  bool     `json:"success"`
	Name     string   `json:"name,omitempty"`
	Triggers []string `json:"triggers,omitempty"`
	Jobs     []Job    `json:"jobs,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func failure(msg string) *Result {
	return &Result{Error: msg}
}

func (r *Result) job(name string) *Job {
	for i := range r.Jobs {
		if r.Jobs[i].Name == name {
			return &r.Jobs[i]
		}
	}
	return nil
}
