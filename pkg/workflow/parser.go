package workflow

import (
	"strings"

	"github.com/pedro-r-marques/devops-tutor/pkg/document"
)

// triggerKeys are tried in order; YAML 1.1 reads a bare "on" key as the
// boolean true.
var triggerKeys = []string{"on", "true"}

func runsOn(v document.Value) string {
	switch v.Kind() {
	case document.Scalar:
		return v.String()
	case document.Sequence:
		if labels := v.Strings(); len(labels) > 0 {
			return strings.Join(labels, ", ")
		}
	case document.Mapping:
		// runner group form: {group: ..., labels: ...}
		if labels := v.Get("labels").Strings(); len(labels) > 0 {
			return strings.Join(labels, ", ")
		}
		if group := v.Get("group").String(); group != "" {
			return group
		}
	}
	return DefaultRunsOn
}

func parseJob(name string, body document.Value) Job {
	needs := body.Get("needs").Strings()
	if needs == nil {
		needs = []string{}
	}
	steps := 0
	if s := body.Get("steps"); s.IsSequence() {
		steps = s.Len()
	}
	return Job{
		Name:   name,
		RunsOn: runsOn(body.Get("runs-on")),
		Needs:  needs,
		Steps:  steps,
	}
}

func triggers(doc document.Value) []string {
	for _, key := range triggerKeys {
		v, ok := doc.Lookup(key)
		if !ok {
			continue
		}
		switch v.Kind() {
		case document.Mapping:
			return v.Keys()
		case document.Sequence, document.Scalar:
			return v.Strings()
		}
		return []string{}
	}
	return []string{}
}

// Parse decodes a workflow document. It never returns nil; errors are
// reported through a Result with Success unset.
func Parse(content string) *Result {
	doc, err := document.Parse([]byte(content))
	if err != nil {
		return failure("YAML error: " + err.Error())
	}

	jobs := doc.Get("jobs")
	if !jobs.IsMapping() || jobs.Len() == 0 {
		return failure(ErrNoJobs.Error())
	}

	result := &Result{
		Success:  true,
		Name:     doc.Get("name").StringOr(DefaultName),
		Triggers: triggers(doc),
		Jobs:     make([]Job, 0, jobs.Len()),
	}
	// A repeated job key keeps the position of its first occurrence and
	// the body of its last.
	index := make(map[string]int, jobs.Len())
	for _, entry := range jobs.Entries() {
		job := parseJob(entry.Key, entry.Value)
		if i, exists := index[entry.Key]; exists {
			result.Jobs[i] = job
			continue
		}
		index[entry.Key] = len(result.Jobs)
		result.Jobs = append(result.Jobs, job)
	}
	return result
}
