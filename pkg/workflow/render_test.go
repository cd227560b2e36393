package workflow

import (
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGolden(t *testing.T) {
	golden, err := ioutil.ReadFile("testdata/nodejs.golden")
	require.NoError(t, err)

	result := Parse(nodejsSample)
	require.True(t, result.Success)
	assert.Equal(t, string(golden), Render(result))
}

func TestRenderDeterministic(t *testing.T) {
	for _, filename := range []string{"testdata/diamond.yaml", "testdata/cycle.yaml", "testdata/noJobs.yaml"} {
		first := Render(parseFile(t, filename))
		second := Render(parseFile(t, filename))
		assert.Equal(t, first, second, filename)
	}
}

func TestRenderFailure(t *testing.T) {
	out := Render(Parse("foo: bar\n"))
	assert.Equal(t, "❌ Invalid workflow: No jobs found", out)
	assert.NotContains(t, out, "\n")
}

func TestRenderTruncatesNames(t *testing.T) {
	result := Parse("jobs:\n  a-really-long-job-name-here:\n    steps: [x]\n  défi:\n    steps: []\n")
	require.True(t, result.Success)
	out := Render(result)
	assert.Contains(t, out, "    │ 📦 a-really-long-job│\n")
	assert.Contains(t, out, "    │ 📦 défi             │\n")
	assert.Contains(t, out, "    │   1 steps          │\n")
}

func TestRenderBoxesFollowDependencies(t *testing.T) {
	out := Render(parseFile(t, "testdata/diamond.yaml"))
	positions := make([]int, 0, 5)
	for _, name := range []string{"checkout", "unit", "integration", "package", "docs"} {
		pos := strings.Index(out, "📦 "+name)
		require.NotEqual(t, -1, pos, name)
		positions = append(positions, pos)
	}
	for i := 1; i < len(positions); i++ {
		assert.Less(t, positions[i-1], positions[i])
	}
	assert.True(t, strings.HasSuffix(out, pipelineFooter))
}

func TestExplain(t *testing.T) {
	out := Explain(Parse(nodejsSample), "en")
	expected := "Workflow Explanation\n\n" +
		"Triggers: push\n\n" +
		"Jobs:\n\n" +
		"test\n• Runs on: ubuntu-latest\n• Steps: 3\n\n" +
		"build\n• Runs on: ubuntu-latest\n• Depends on: test\n• Steps: 2\n\n" +
		"deploy\n• Runs on: ubuntu-latest\n• Depends on: build\n• Steps: 1\n\n"
	assert.Equal(t, expected, out)
}

func TestExplainDeclarationOrder(t *testing.T) {
	out := Explain(parseFile(t, "testdata/diamond.yaml"), "en")
	assert.Less(t, strings.Index(out, "package\n"), strings.Index(out, "checkout\n"))
	assert.Contains(t, out, "• Depends on: unit, integration\n")
	assert.Contains(t, out, "Triggers: push, workflow_dispatch\n")
}

func TestExplainLanguage(t *testing.T) {
	result := Parse(nodejsSample)
	en := Explain(result, "en")
	si := Explain(result, "si")
	assert.True(t, strings.HasPrefix(si, explanationTitles["si"]+"\n\n"))
	assert.Equal(t, strings.SplitN(en, "\n\n", 2)[1], strings.SplitN(si, "\n\n", 2)[1])
	assert.Equal(t, en, Explain(result, "fr"))
}

func TestExplainFailure(t *testing.T) {
	assert.Equal(t, "❌ Invalid workflow: No jobs found", Explain(Parse("foo: bar"), "si"))
}
