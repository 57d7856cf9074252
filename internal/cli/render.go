package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/util"
)

const descriptionWidth = 80

// renderDescription renders a job description as terminal markdown.
// Falls back to the raw text if glamour cannot render it.
func renderDescription(description string) string {
	if description == "" {
		return RenderMuted("No description")
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(descriptionWidth),
	)
	if err != nil {
		return description
	}
	rendered, err := renderer.Render(description)
	if err != nil {
		return description
	}
	return strings.TrimSpace(rendered)
}

// formatJobLine renders one row of a job listing. position is 1-based within
// the page, the number `job move` takes.
func formatJobLine(position int, job *model.Job, applicants int, highlight bool) string {
	title := job.Title
	if highlight {
		title = RenderBold(title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%3d. %s  %s", position, RenderID(job.ID), title)
	if job.Location != "" {
		b.WriteString("  " + RenderMuted(job.Location))
	}
	if job.Status != model.JobStatusActive {
		b.WriteString("  " + RenderStatus(job.Status))
	}
	if tags := RenderTags(job.Tags); tags != "" {
		b.WriteString("  " + tags)
	}
	if applicants > 0 {
		b.WriteString("  " + RenderMuted(pluralize(applicants, "applicant")))
	}
	return b.String()
}

// printJobPage prints a page of jobs. highlightID marks a just-moved job.
func printJobPage(page *model.JobPage, applicants map[string]int, highlightID string) {
	if len(page.Data) == 0 {
		PrintInfo("No jobs found")
		return
	}

	header := fmt.Sprintf("(page %d of %d, %s)", page.Page, max(page.TotalPages(), 1), pluralize(page.Total, "job"))
	fmt.Printf("%s %s\n", RenderBold("Jobs"), RenderMuted(header))
	for i := range page.Data {
		job := &page.Data[i]
		fmt.Println(formatJobLine(i+1, job, applicants[job.ID], job.ID == highlightID))
	}
}

// printCandidateLine renders one candidate row.
func printCandidateLine(c *model.Candidate, jobTitle string) {
	line := fmt.Sprintf("  %s  %s %s  %s", RenderID(c.ID), c.Name, RenderMuted("<"+c.Email+">"), RenderStage(c.Stage))
	if c.Assessment != model.AssessmentNone {
		line += "  " + RenderMuted("assessment "+string(c.Assessment))
	}
	if jobTitle != "" {
		line += "  " + RenderMuted("for "+jobTitle)
	}
	line += "  " + RenderMuted(util.FormatMillis(c.AppliedAtMillis))
	fmt.Println(line)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
