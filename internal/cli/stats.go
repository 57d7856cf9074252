package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/amterp/ra"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/talentflow/talentflow/internal/client"
	"github.com/talentflow/talentflow/internal/model"
)

const topJobsShown = 5

func registerStats(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("stats")
	cmd.SetDescription("Show the hiring dashboard")
	ctx.StatsUsed, _ = parent.RegisterCmd(cmd)
}

// dashboard is everything `stats` prints.
type dashboard struct {
	Statistics *model.DashboardStatistics   `json:"statistics"`
	Pipeline   map[model.CandidateStage]int `json:"pipeline"`
	TopJobs    []jobApplicants              `json:"top_jobs"`
}

type jobApplicants struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Applicants int    `json:"applicants"`
}

func runStats(app *App, jsonOutput bool) {
	ctx, stop := signalContext()
	defer stop()

	d, err := loadDashboard(ctx, app.Client())
	if err != nil {
		app.FatalRemote(err)
	}

	if jsonOutput {
		if err := printJson(d); err != nil {
			Fatal(err)
		}
		return
	}
	printDashboard(d)
}

// loadDashboard fetches the server statistics, candidates and jobs in parallel.
func loadDashboard(ctx context.Context, c *client.Client) (*dashboard, error) {
	var (
		stats      *model.DashboardStatistics
		candidates []model.Candidate
		jobs       []model.Job
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = c.Statistics(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = c.ListCandidates(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = c.AllJobs(gctx, model.JobQuery{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildDashboard(stats, candidates, jobs), nil
}

func buildDashboard(stats *model.DashboardStatistics, candidates []model.Candidate, jobs []model.Job) *dashboard {
	pipeline := make(map[model.CandidateStage]int, len(model.Stages()))
	for _, stage := range model.Stages() {
		pipeline[stage] = 0
	}
	for _, c := range candidates {
		pipeline[c.Stage]++
	}

	counts := countByJob(candidates)
	top := make([]jobApplicants, 0, len(jobs))
	for _, job := range jobs {
		if counts[job.ID] == 0 {
			continue
		}
		top = append(top, jobApplicants{ID: job.ID, Title: job.Title, Applicants: counts[job.ID]})
	}
	// Ties keep board order.
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Applicants > top[j].Applicants
	})
	if len(top) > topJobsShown {
		top = top[:topJobsShown]
	}

	return &dashboard{Statistics: stats, Pipeline: pipeline, TopJobs: top}
}

func printDashboard(d *dashboard) {
	const labelWidth = 22
	s := d.Statistics

	lines := []string{
		LabelValue("Jobs", fmt.Sprintf("%d (%d active)", s.TotalJobs, s.ActiveJobs), labelWidth),
		LabelValue("Candidates", fmt.Sprintf("%d (%d new this week)", s.TotalCandidates, s.NewCandidates), labelWidth),
		LabelValue("Assessments", fmt.Sprintf("%d (%d completed)", s.TotalAssessments, s.CompletedAssessments), labelWidth),
		LabelValue("Interviews scheduled", fmt.Sprintf("%d", s.InterviewsScheduled), labelWidth),
		LabelValue("Offers pending", fmt.Sprintf("%d", s.OffersPending), labelWidth),
		LabelValue("Hired", fmt.Sprintf("%d", s.HiredCandidates), labelWidth),
	}
	fmt.Println(TitleBox("Hiring dashboard"))
	fmt.Println(Box(strings.Join(lines, "\n")))

	fmt.Println()
	fmt.Println(RenderBold("Pipeline"))
	stageCell := lipgloss.NewStyle().Width(11)
	for _, stage := range model.Stages() {
		fmt.Printf("  %s %d\n", stageCell.Render(RenderStage(stage)), d.Pipeline[stage])
	}

	if len(d.TopJobs) > 0 {
		fmt.Println()
		fmt.Println(RenderBold("Most applicants"))
		for _, job := range d.TopJobs {
			fmt.Printf("  %s  %s  %s\n", RenderID(job.ID), job.Title, RenderMuted(pluralize(job.Applicants, "applicant")))
		}
	}
}
