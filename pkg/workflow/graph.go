package workflow

import (
	"fmt"
	"strings"
)

type jobNodeMap map[string][]string

// makeSuccessors maps each job to the jobs that need it. Dependencies on
// undeclared jobs are left out.
func makeSuccessors(jobs []Job) jobNodeMap {
	declared := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		declared[job.Name] = true
	}
	successors := make(jobNodeMap, len(jobs))
	for _, job := range jobs {
		for _, dep := range job.Needs {
			if !declared[dep] {
				continue
			}
			successors[dep] = append(successors[dep], job.Name)
		}
	}
	return successors
}

// Order lists job names so that every job follows the jobs it needs.
// Jobs unrelated by dependencies keep their declaration order. Names in
// needs that match no job are skipped. A cycle does not stop the walk:
// the first job of the cycle to be reached is emitted after the rest.
func Order(jobs []Job) []string {
	byName := make(map[string]*Job, len(jobs))
	for i := range jobs {
		if _, exists := byName[jobs[i].Name]; !exists {
			byName[jobs[i].Name] = &jobs[i]
		}
	}

	result := make([]string, 0, len(jobs))
	visited := make(map[string]bool, len(jobs))

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		job, exists := byName[name]
		if !exists {
			return
		}
		for _, dep := range job.Needs {
			visit(dep)
		}
		result = append(result, name)
	}

	for _, job := range jobs {
		visit(job.Name)
	}
	return result
}

// FindCycle returns the first dependency cycle found, as a path that starts
// and ends with the same job, or nil when the graph is acyclic.
func FindCycle(jobs []Job) []string {
	successors := makeSuccessors(jobs)

	const (
		unvisited = iota
		inStack
		done
	)
	state := make(map[string]int, len(jobs))
	var stack []string

	var visit func(name string) []string
	visit = func(name string) []string {
		switch state[name] {
		case done:
			return nil
		case inStack:
			for i, n := range stack {
				if n == name {
					cycle := append([]string{}, stack[i:]...)
					return append(cycle, name)
				}
			}
		}
		state[name] = inStack
		stack = append(stack, name)
		for _, next := range successors[name] {
			if cycle := visit(next); cycle != nil {
				return cycle
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	for _, job := range jobs {
		if cycle := visit(job.Name); cycle != nil {
			// successors point from a dependency to its dependent; report
			// the path in "needs" direction.
			for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
				cycle[i], cycle[j] = cycle[j], cycle[i]
			}
			return cycle
		}
	}
	return nil
}

// CheckAcyclic returns an error wrapping ErrCycle when the jobs contain a
// dependency cycle.
func CheckAcyclic(jobs []Job) error {
	if cycle := FindCycle(jobs); cycle != nil {
		return fmt.Errorf("%w: %s", ErrCycle, strings.Join(cycle, " -> "))
	}
	return nil
}
