// Package yamlcheck validates YAML documents and recognises the common
// DevOps file layouts: Kubernetes manifests, GitHub Actions workflows and
// Docker Compose files.
package yamlcheck

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pedro-r-marques/devops-tutor/pkg/document"
)

const (
	KindEmpty         = "empty"
	KindScalar        = "scalar"
	KindSequence      = "sequence"
	KindKubernetes    = "kubernetes"
	KindGitHubActions = "github-actions"
	KindCompose       = "compose"
	KindGeneric       = "generic"
)

const (
	previewLimit  = 500
	maxListedKeys = 5
	maxListedObjs = 3
)

// Report is the outcome of validating a document.
type Report struct {
	Valid bool   `json:"valid"`
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error,omitempty"`

	// kubernetes
	APIVersion   string `json:"apiVersion,omitempty"`
	ResourceKind string `json:"resourceKind,omitempty"`
	// github-actions
	Jobs []string `json:"jobs,omitempty"`
	// compose
	Services []string `json:"services,omitempty"`
	// generic
	Keys []string `json:"keys,omitempty"`

	// JSON rendering of the document, cut at 500 characters
	Preview string `json:"preview,omitempty"`
}

func firstN(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func preview(doc document.Value) string {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Sprintf("(preview unavailable: %v)", err)
	}
	runes := []rune(string(data))
	if len(runes) > previewLimit {
		runes = runes[:previewLimit]
	}
	return string(runes)
}

func classify(doc document.Value, report *Report) {
	if doc.IsNull() {
		report.Kind = KindEmpty
		return
	}
	switch doc.Kind() {
	case document.Scalar:
		report.Kind = KindScalar
		return
	case document.Sequence:
		report.Kind = KindSequence
		return
	}

	switch {
	case doc.Has("apiVersion") && doc.Has("kind"):
		report.Kind = KindKubernetes
		report.APIVersion = doc.Get("apiVersion").String()
		report.ResourceKind = doc.Get("kind").StringOr("Unknown")
	case doc.Has("name") && (doc.Has("on") || doc.Has("true") || doc.Has("jobs")):
		report.Kind = KindGitHubActions
		report.Jobs = doc.Get("jobs").Keys()
	case doc.Has("services") || doc.Has("version"):
		report.Kind = KindCompose
		report.Services = doc.Get("services").Keys()
	default:
		report.Kind = KindGeneric
		report.Keys = firstN(doc.Keys(), maxListedKeys)
	}
}

// Validate parses content and describes its structure.
func Validate(content string) *Report {
	doc, err := document.Parse([]byte(content))
	if err != nil {
		return &Report{Error: err.Error()}
	}
	report := &Report{Valid: true}
	classify(doc, report)
	if report.Kind != KindEmpty {
		report.Preview = preview(doc)
	}
	return report
}

// Summary formats a report as text.
func (r *Report) Summary() string {
	if !r.Valid {
		return fmt.Sprintf("Invalid YAML\n\n%s", r.Error)
	}

	var b strings.Builder
	switch r.Kind {
	case KindEmpty:
		return "Valid YAML (empty document)"
	case KindScalar, KindSequence:
		fmt.Fprintf(&b, "Valid YAML\n\nThis YAML contains a %s", r.Kind)
	case KindKubernetes:
		fmt.Fprintf(&b, "Valid YAML\n\nKubernetes %s manifest\n", r.ResourceKind)
		fmt.Fprintf(&b, "• apiVersion: %s\n• kind: %s", r.APIVersion, r.ResourceKind)
	case KindGitHubActions:
		fmt.Fprintf(&b, "Valid YAML\n\nGitHub Actions workflow\n")
		fmt.Fprintf(&b, "• jobs: %d job(s) - %s", len(r.Jobs), strings.Join(firstN(r.Jobs, maxListedObjs), ", "))
	case KindCompose:
		fmt.Fprintf(&b, "Valid YAML\n\nDocker Compose file\n")
		fmt.Fprintf(&b, "• services: %d service(s) - %s", len(r.Services), strings.Join(firstN(r.Services, maxListedObjs), ", "))
	default:
		fmt.Fprintf(&b, "Valid YAML\n\nTop-level keys: %s", strings.Join(r.Keys, ", "))
	}
	return b.String()
}
