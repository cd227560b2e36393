package yamlcheck

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKubernetes(t *testing.T) {
	report := Validate("apiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: web\n")
	require.True(t, report.Valid)
	assert.Equal(t, KindKubernetes, report.Kind)
	assert.Equal(t, "apps/v1", report.APIVersion)
	assert.Equal(t, "Deployment", report.ResourceKind)
	assert.Contains(t, report.Summary(), "Kubernetes Deployment manifest")
}

func TestValidateWorkflow(t *testing.T) {
	report := Validate("name: CI\non: push\njobs:\n  lint: {}\n  test: {}\n  build: {}\n  release: {}\n")
	require.True(t, report.Valid)
	assert.Equal(t, KindGitHubActions, report.Kind)
	assert.Equal(t, []string{"lint", "test", "build", "release"}, report.Jobs)
	assert.Contains(t, report.Summary(), "4 job(s) - lint, test, build")
}

func TestValidateCompose(t *testing.T) {
	report := Validate("version: \"3\"\nservices:\n  web:\n    image: nginx\n  db:\n    image: mysql\n")
	require.True(t, report.Valid)
	assert.Equal(t, KindCompose, report.Kind)
	assert.Equal(t, []string{"web", "db"}, report.Services)
}

func TestValidateGeneric(t *testing.T) {
	report := Validate("a: 1\nb: 2\nc: 3\nd: 4\ne: 5\nf: 6\n")
	require.True(t, report.Valid)
	assert.Equal(t, KindGeneric, report.Kind)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, report.Keys)
	assert.Equal(t, "Valid YAML\n\nTop-level keys: a, b, c, d, e", report.Summary())
}

func TestValidateDetectionOrder(t *testing.T) {
	// apiVersion/kind wins over the workflow markers
	report := Validate("apiVersion: v1\nkind: Pod\nname: x\njobs: {}\n")
	assert.Equal(t, KindKubernetes, report.Kind)

	// a workflow needs a name
	report = Validate("jobs:\n  a: {}\nversion: 2\n")
	assert.Equal(t, KindCompose, report.Kind)
}

func TestValidateNonMapping(t *testing.T) {
	assert.Equal(t, KindEmpty, Validate("").Kind)
	assert.Equal(t, "Valid YAML (empty document)", Validate("# only a comment\n").Summary())
	assert.Equal(t, KindSequence, Validate("- a\n- b\n").Kind)
	assert.Equal(t, KindScalar, Validate("hello").Kind)
}

func TestValidateInvalid(t *testing.T) {
	report := Validate("key: [unclosed\n")
	assert.False(t, report.Valid)
	assert.Contains(t, report.Error, "yaml:")
	assert.True(t, strings.HasPrefix(report.Summary(), "Invalid YAML"))
	assert.Empty(t, report.Preview)
}

func TestValidatePreview(t *testing.T) {
	report := Validate("b: 1\na: two\n")
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": \"two\"\n}", report.Preview)

	var b strings.Builder
	for i := 0; i < 100; i++ {
		b.WriteString("key")
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString(string(rune('a' + i%26)))
		b.WriteString(": value\n")
	}
	report = Validate(b.String())
	assert.Len(t, report.Preview, previewLimit)
}

func TestValidatePreviewMultibyte(t *testing.T) {
	report := Validate("kk: " + strings.Repeat("é", 600) + "\n")
	require.True(t, report.Valid)
	assert.True(t, utf8.ValidString(report.Preview))
	assert.Equal(t, previewLimit, utf8.RuneCountInString(report.Preview))
	assert.True(t, strings.HasSuffix(report.Preview, "é"))
}

func TestValidatePreviewNonFinite(t *testing.T) {
	report := Validate("x: .inf\ny: -.inf\nz: .nan\n")
	require.True(t, report.Valid)
	assert.Equal(t, "{\n  \"x\": \"+Inf\",\n  \"y\": \"-Inf\",\n  \"z\": \"NaN\"\n}", report.Preview)
}
