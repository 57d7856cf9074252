package cli

import (
	"context"
	"fmt"

	"github.com/amterp/ra"
	"golang.org/x/sync/errgroup"

	"github.com/talentflow/talentflow/internal/client"
	"github.com/talentflow/talentflow/internal/model"
)

func registerCandidate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("candidate")
	cmd.SetDescription("Manage candidates")

	// candidate list
	listCmd := ra.NewCmd("list")
	listCmd.SetDescription("List candidates, newest first")
	ctx.CandidateListJob, _ = ra.NewString("job").
		SetShort("j").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only candidates for this job (ID or slug)").
		SetCompletionFunc(completeJobs).
		Register(listCmd)
	ctx.CandidateListUsed, _ = cmd.RegisterCmd(listCmd)

	// candidate add
	addCmd := ra.NewCmd("add")
	addCmd.SetDescription("Record an application")
	ctx.CandidateAddName, _ = ra.NewString("name").
		SetOptional(true).
		SetUsage("Candidate name (prompted for if omitted)").
		Register(addCmd)
	ctx.CandidateAddEmail, _ = ra.NewString("email").
		SetShort("e").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Candidate email (prompted for if omitted)").
		Register(addCmd)
	ctx.CandidateAddJob, _ = ra.NewString("job").
		SetShort("j").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Job ID or slug (chosen from active jobs if omitted)").
		SetCompletionFunc(completeJobs).
		Register(addCmd)
	ctx.CandidateAddStage, _ = ra.NewString("stage").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Pipeline stage (default: applied)").
		SetCompletionFunc(completeStages).
		Register(addCmd)
	ctx.CandidateAddUsed, _ = cmd.RegisterCmd(addCmd)

	// candidate stage
	stageCmd := ra.NewCmd("stage")
	stageCmd.SetDescription("Move a candidate through the pipeline")
	ctx.CandidateStageID, _ = ra.NewString("candidate").
		SetUsage("Candidate ID").
		Register(stageCmd)
	ctx.CandidateStageValue, _ = ra.NewString("stage").
		SetOptional(true).
		SetUsage("New stage (applied, screen, interview, offer, hired, rejected)").
		SetCompletionFunc(completeStages).
		Register(stageCmd)
	ctx.CandidateStageAssessment, _ = ra.NewString("assessment").
		SetShort("a").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Assessment status (assigned, completed)").
		Register(stageCmd)
	ctx.CandidateStageUsed, _ = cmd.RegisterCmd(stageCmd)

	ctx.CandidateUsed, _ = parent.RegisterCmd(cmd)
}

// --- list ---

func runCandidateList(app *App, jobID string, jsonOutput bool) {
	ctx, stop := signalContext()
	defer stop()

	if jobID != "" {
		var err error
		if jobID, err = app.ResolveJobID(ctx, jobID); err != nil {
			app.FatalRemote(err)
		}
	}

	candidates, titles, err := loadCandidates(ctx, app.Client(), jobID)
	if err != nil {
		app.FatalRemote(err)
	}

	if jsonOutput {
		if err := printJson(NewCandidatesOutput(candidates)); err != nil {
			Fatal(err)
		}
		return
	}

	if len(candidates) == 0 {
		PrintInfo("No candidates found")
		return
	}
	for i := range candidates {
		c := &candidates[i]
		title := ""
		if jobID == "" {
			title = titles[c.JobID]
		}
		printCandidateLine(c, title)
	}
}

// loadCandidates fetches candidates and, in parallel, job titles to label
// them with. Titles cover every job, not one page.
func loadCandidates(ctx context.Context, c *client.Client, jobID string) ([]model.Candidate, map[string]string, error) {
	var (
		candidates []model.Candidate
		titles     = make(map[string]string)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = c.ListCandidates(gctx, jobID)
		return err
	})
	if jobID == "" {
		g.Go(func() error {
			jobs, err := c.AllJobs(gctx, model.JobQuery{})
			if err != nil {
				return err
			}
			for _, job := range jobs {
				titles[job.ID] = job.Title
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return candidates, titles, nil
}

// --- add ---

type candidateAddInput struct {
	name  string
	email string
	jobID string
	stage string
}

func runCandidateAdd(app *App, input candidateAddInput, jsonOutput bool) {
	ctx, stop := signalContext()
	defer stop()

	c := app.Client()
	var err error

	if input.name == "" {
		if input.name, err = app.Prompter.Input("Candidate name", "", true); err != nil {
			Fatal(fmt.Errorf("name is required: %w", err))
		}
	}
	if input.email == "" {
		if input.email, err = app.Prompter.Input("Email", "", true); err != nil {
			Fatal(fmt.Errorf("email is required: %w", err))
		}
	}
	if input.jobID == "" {
		if input.jobID, err = promptJob(ctx, app); err != nil {
			Fatal(fmt.Errorf("job is required: %w", err))
		}
	} else if input.jobID, err = app.ResolveJobID(ctx, input.jobID); err != nil {
		app.FatalRemote(err)
	}

	candidate, err := c.CreateCandidate(ctx, model.CreateCandidateRequest{
		Name:  input.name,
		Email: input.email,
		JobID: input.jobID,
		Stage: model.CandidateStage(input.stage),
	})
	if err != nil {
		app.FatalRemote(err)
	}

	if jsonOutput {
		if err := printJson(CandidateOutput{Candidate: candidate}); err != nil {
			Fatal(err)
		}
		return
	}
	PrintSuccess("Added %s (%s) as %s", RenderBold(candidate.Name), RenderID(candidate.ID), RenderStage(candidate.Stage))
}

// promptJob lets the user pick one of the active jobs by title.
func promptJob(ctx context.Context, app *App) (string, error) {
	jobs, err := app.Client().AllJobs(ctx, model.JobQuery{Status: model.JobStatusActive})
	if err != nil {
		return "", err
	}
	if len(jobs) == 0 {
		return "", fmt.Errorf("no active jobs")
	}

	options := make([]string, len(jobs))
	byOption := make(map[string]string, len(jobs))
	for i, job := range jobs {
		options[i] = fmt.Sprintf("%s (%s)", job.Title, job.ID)
		byOption[options[i]] = job.ID
	}

	choice, err := app.Prompter.Select("Job", options)
	if err != nil {
		return "", err
	}
	return byOption[choice], nil
}

// --- stage ---

func runCandidateStage(app *App, candidateID, stage, assessment string, jsonOutput bool) {
	if stage == "" && assessment == "" {
		stages := make([]string, 0, len(model.Stages()))
		for _, s := range model.Stages() {
			stages = append(stages, string(s))
		}
		var err error
		if stage, err = app.Prompter.Select("Stage", stages); err != nil {
			Fatal(fmt.Errorf("give a stage or --assessment: %w", err))
		}
	}

	var req model.UpdateCandidateRequest
	if stage != "" {
		s := model.CandidateStage(stage)
		req.Stage = &s
	}
	if assessment != "" {
		a := model.AssessmentStatus(assessment)
		req.Assessment = &a
	}

	ctx, stop := signalContext()
	defer stop()

	candidate, err := app.Client().UpdateCandidate(ctx, candidateID, req)
	if err != nil {
		app.FatalRemote(err)
	}

	if jsonOutput {
		if err := printJson(CandidateOutput{Candidate: candidate}); err != nil {
			Fatal(err)
		}
		return
	}
	msg := fmt.Sprintf("%s is now %s", RenderBold(candidate.Name), RenderStage(candidate.Stage))
	if candidate.Assessment != model.AssessmentNone {
		msg += fmt.Sprintf(" (assessment %s)", candidate.Assessment)
	}
	PrintSuccess("%s", msg)
}
