package workflow

import (
	"fmt"
	"strings"
)

const (
	boxNameWidth = 17
	arrow        = "            │\n            ▼\n"
)

const pipelineHeader = "" +
	"┌─────────────────────────────┐\n" +
	"│      CI/CD PIPELINE         │\n" +
	"└─────────────────────────────┘\n"

const pipelineFooter = "" +
	"    ┌─────────────────────┐\n" +
	"    │    ✅ COMPLETE      │\n" +
	"    └─────────────────────┘\n"

var explanationTitles = map[string]string{
	"en": "Workflow Explanation",
	"si": "Workflow පැහැදිලි කිරීම",
}

// FailureLine is the single line shown in place of a diagram or an
// explanation for a failed Result.
func FailureLine(r *Result) string {
	return "❌ " + r.Error
}

// fitWidth truncates s to width runes and pads it with spaces.
func fitWidth(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		runes = runes[:width]
	}
	return string(runes) + strings.Repeat(" ", width-len(runes))
}

func writeJobBox(b *strings.Builder, job *Job) {
	b.WriteString("    ┌─────────────────────┐\n")
	fmt.Fprintf(b, "    │ 📦 %s│\n", fitWidth(job.Name, boxNameWidth))
	fmt.Fprintf(b, "    │   %d steps%s│\n", job.Steps, strings.Repeat(" ", 10))
	b.WriteString("    └─────────────────────┘\n")
}

// Render draws the jobs of a successful Result top to bottom in dependency
// order. The output depends only on the Result.
func Render(r *Result) string {
	if !r.Success {
		return FailureLine(r)
	}

	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteString("\n\n")
	b.WriteString(pipelineHeader)
	for _, name := range Order(r.Jobs) {
		b.WriteString(arrow)
		writeJobBox(&b, r.job(name))
	}
	b.WriteString(arrow)
	b.WriteString(pipelineFooter)
	return b.String()
}

// Explain summarises the triggers and the jobs in declaration order. lang
// selects the title only; unknown languages fall back to English.
func Explain(r *Result, lang string) string {
	if !r.Success {
		return FailureLine(r)
	}

	title, ok := explanationTitles[lang]
	if !ok {
		title = explanationTitles["en"]
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Triggers: %s\n\n", strings.Join(r.Triggers, ", "))
	b.WriteString("Jobs:\n\n")
	for _, job := range r.Jobs {
		b.WriteString(job.Name)
		b.WriteString("\n")
		fmt.Fprintf(&b, "• Runs on: %s\n", job.RunsOn)
		if len(job.Needs) > 0 {
			fmt.Fprintf(&b, "• Depends on: %s\n", strings.Join(job.Needs, ", "))
		}
		fmt.Fprintf(&b, "• Steps: %d\n\n", job.Steps)
	}
	return b.String()
}
