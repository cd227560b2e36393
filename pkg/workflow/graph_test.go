package workflow

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(list []string, name string) int {
	for i, v := range list {
		if v == name {
			return i
		}
	}
	return -1
}

func assertDependencyOrder(t *testing.T, jobs []Job, order []string) {
	declared := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		declared[job.Name] = true
	}
	require.Len(t, order, len(declared))
	for _, job := range jobs {
		assert.Equal(t, 1, countOf(order, job.Name), job.Name)
		for _, dep := range job.Needs {
			if !declared[dep] {
				continue
			}
			assert.Less(t, indexOf(order, dep), indexOf(order, job.Name), "%s needs %s", job.Name, dep)
		}
	}
}

func countOf(list []string, name string) int {
	n := 0
	for _, v := range list {
		if v == name {
			n++
		}
	}
	return n
}

func TestOrderSimple(t *testing.T) {
	result := Parse(nodejsSample)
	require.True(t, result.Success)
	assert.Equal(t, []string{"test", "build", "deploy"}, Order(result.Jobs))
}

func TestOrderReverseDeclaration(t *testing.T) {
	jobs := []Job{
		{Name: "deploy", Needs: []string{"build"}},
		{Name: "build", Needs: []string{"test"}},
		{Name: "test"},
	}
	assert.Equal(t, []string{"test", "build", "deploy"}, Order(jobs))
}

func TestOrderDiamond(t *testing.T) {
	result := parseFile(t, "testdata/diamond.yaml")
	require.True(t, result.Success)
	order := Order(result.Jobs)
	assert.Equal(t, []string{"checkout", "unit", "integration", "package", "docs"}, order)
	assertDependencyOrder(t, result.Jobs, order)
}

func TestOrderStableForIndependentJobs(t *testing.T) {
	jobs := []Job{{Name: "c"}, {Name: "a"}, {Name: "b"}}
	assert.Equal(t, []string{"c", "a", "b"}, Order(jobs))
}

func TestOrderDanglingDependency(t *testing.T) {
	result := parseFile(t, "testdata/dangling.yaml")
	require.True(t, result.Success)
	order := Order(result.Jobs)
	assert.Equal(t, []string{"build", "deploy"}, order)
	assert.Equal(t, -1, indexOf(order, "publish"))
}

func TestOrderSelfCycle(t *testing.T) {
	result := parseFile(t, "testdata/selfCycle.yaml")
	require.True(t, result.Success)
	assert.Equal(t, []string{"build"}, Order(result.Jobs))
}

// A cycle is walked leniently: every job is emitted once, the job that
// entered the cycle last.
func TestOrderCycleIsLenient(t *testing.T) {
	result := parseFile(t, "testdata/cycle.yaml")
	require.True(t, result.Success)
	order := Order(result.Jobs)
	assert.Equal(t, []string{"lint", "b", "c", "a"}, order)
	assert.ElementsMatch(t, []string{"lint", "a", "b", "c"}, order)
}

func TestOrderRandomDAG(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(12)
		jobs := make([]Job, n)
		for i := 0; i < n; i++ {
			jobs[i].Name = fmt.Sprintf("j%d", i)
			// edges only point at lower indices, so the graph is acyclic
			for j := 0; j < i; j++ {
				if rng.Intn(3) == 0 {
					jobs[i].Needs = append(jobs[i].Needs, fmt.Sprintf("j%d", j))
				}
			}
			if rng.Intn(5) == 0 {
				jobs[i].Needs = append(jobs[i].Needs, "missing")
			}
		}
		rng.Shuffle(n, func(i, j int) { jobs[i], jobs[j] = jobs[j], jobs[i] })

		order := Order(jobs)
		assertDependencyOrder(t, jobs, order)
		assert.Nil(t, FindCycle(jobs))
		assert.Equal(t, order, Order(jobs))
	}
}

func TestFindCycle(t *testing.T) {
	result := parseFile(t, "testdata/cycle.yaml")
	require.True(t, result.Success)
	assert.Equal(t, []string{"c", "b", "a", "c"}, FindCycle(result.Jobs))

	err := CheckAcyclic(result.Jobs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycle))
	assert.Equal(t, "dependency cycle: c -> b -> a -> c", err.Error())
}

func TestFindSelfCycle(t *testing.T) {
	result := parseFile(t, "testdata/selfCycle.yaml")
	require.True(t, result.Success)
	assert.Equal(t, []string{"build", "build"}, FindCycle(result.Jobs))
}

func TestFindCycleAcyclic(t *testing.T) {
	for _, filename := range []string{"testdata/diamond.yaml", "testdata/dangling.yaml"} {
		result := parseFile(t, filename)
		require.True(t, result.Success)
		assert.Nil(t, FindCycle(result.Jobs), filename)
		assert.NoError(t, CheckAcyclic(result.Jobs), filename)
	}
}
