package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/amterp/ra"
	"golang.org/x/sync/errgroup"

	"github.com/talentflow/talentflow/internal/client"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/resolver"
	"github.com/talentflow/talentflow/internal/util"
)

func registerJob(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("job")
	cmd.SetDescription("Manage job postings")

	// job list
	listCmd := ra.NewCmd("list")
	listCmd.SetDescription("List jobs in board order")
	ctx.JobListSearch, ctx.JobListStatus, ctx.JobListPage, ctx.JobListPageSize = registerQueryFlags(listCmd)
	ctx.JobListUsed, _ = cmd.RegisterCmd(listCmd)

	// job show
	showCmd := ra.NewCmd("show")
	showCmd.SetDescription("Show a job with its description and applicants")
	ctx.JobShowID, _ = ra.NewString("job").
		SetUsage("Job ID or slug").
		SetCompletionFunc(completeJobs).
		Register(showCmd)
	ctx.JobShowUsed, _ = cmd.RegisterCmd(showCmd)

	// job add
	addCmd := ra.NewCmd("add")
	addCmd.SetDescription("Post a new job at the end of the board")
	ctx.JobAddTitle, _ = ra.NewString("title").
		SetOptional(true).
		SetUsage("Job title (prompted for if omitted)").
		Register(addCmd)
	ctx.JobAddLocation, _ = ra.NewString("location").
		SetShort("l").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Job location").
		Register(addCmd)
	ctx.JobAddDescription, _ = ra.NewString("description").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Job description (markdown)").
		Register(addCmd)
	ctx.JobAddTags, _ = ra.NewStringSlice("tag").
		SetShort("t").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Tag (repeatable)").
		Register(addCmd)
	ctx.JobAddArchived, _ = ra.NewBool("archived").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Create the job archived").
		Register(addCmd)
	ctx.JobAddUsed, _ = cmd.RegisterCmd(addCmd)

	// job edit
	editCmd := ra.NewCmd("edit")
	editCmd.SetDescription("Edit a job (prompts for a field when no flags are given)")
	ctx.JobEditID, _ = ra.NewString("job").
		SetUsage("Job ID or slug").
		SetCompletionFunc(completeJobs).
		Register(editCmd)
	ctx.JobEditTitle, _ = ra.NewString("title").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New title").
		Register(editCmd)
	ctx.JobEditLocation, _ = ra.NewString("location").
		SetShort("l").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New location").
		Register(editCmd)
	ctx.JobEditDescription, _ = ra.NewString("description").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New description (markdown)").
		Register(editCmd)
	ctx.JobEditTags, _ = ra.NewStringSlice("tag").
		SetShort("t").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Replace tags (repeatable)").
		Register(editCmd)
	ctx.JobEditClearTags, _ = ra.NewBool("clear-tags").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Remove all tags").
		Register(editCmd)
	ctx.JobEditUsed, _ = cmd.RegisterCmd(editCmd)

	// job archive
	archiveCmd := ra.NewCmd("archive")
	archiveCmd.SetDescription("Archive a job")
	ctx.JobArchiveID, _ = ra.NewString("job").
		SetUsage("Job ID or slug").
		SetCompletionFunc(completeJobs).
		Register(archiveCmd)
	ctx.JobArchiveUsed, _ = cmd.RegisterCmd(archiveCmd)

	// job unarchive
	unarchiveCmd := ra.NewCmd("unarchive")
	unarchiveCmd.SetDescription("Reactivate an archived job")
	ctx.JobUnarchiveID, _ = ra.NewString("job").
		SetUsage("Job ID or slug").
		SetCompletionFunc(completeJobs).
		Register(unarchiveCmd)
	ctx.JobUnarchiveUsed, _ = cmd.RegisterCmd(unarchiveCmd)

	// job delete
	deleteCmd := ra.NewCmd("delete")
	deleteCmd.SetDescription("Delete a job")
	ctx.JobDeleteID, _ = ra.NewString("job").
		SetUsage("Job ID or slug").
		SetCompletionFunc(completeJobs).
		Register(deleteCmd)
	ctx.JobDeleteForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip confirmation prompt").
		Register(deleteCmd)
	ctx.JobDeleteUsed, _ = cmd.RegisterCmd(deleteCmd)

	// job move
	moveCmd := ra.NewCmd("move")
	moveCmd.SetDescription("Move a job to another position on the listed page")
	ctx.JobMoveFrom, _ = ra.NewInt("from").
		SetUsage("Current position, as numbered by 'job list'").
		Register(moveCmd)
	ctx.JobMoveTo, _ = ra.NewInt("to").
		SetUsage("Target position on the same page").
		Register(moveCmd)
	ctx.JobMoveSearch, ctx.JobMoveStatus, ctx.JobMovePage, ctx.JobMovePageSize = registerQueryFlags(moveCmd)
	ctx.JobMoveUsed, _ = cmd.RegisterCmd(moveCmd)

	// job watch
	watchCmd := ra.NewCmd("watch")
	watchCmd.SetDescription("Print the job order and reprint it whenever it changes")
	ctx.JobWatchSearch, _ = ra.NewString("search").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only jobs whose title or tags match").
		Register(watchCmd)
	ctx.JobWatchStatus, _ = ra.NewString("status").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only jobs with this status (active, archived)").
		Register(watchCmd)
	ctx.JobWatchUsed, _ = cmd.RegisterCmd(watchCmd)

	ctx.JobUsed, _ = parent.RegisterCmd(cmd)
}

// registerQueryFlags adds the listing filters shared by list and move. Move
// must see the same page list printed, so both take identical flags.
func registerQueryFlags(cmd *ra.Cmd) (search, status *string, page, pageSize *int) {
	search, _ = ra.NewString("search").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only jobs whose title or tags match").
		Register(cmd)
	status, _ = ra.NewString("status").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Only jobs with this status (active, archived)").
		Register(cmd)
	page, _ = ra.NewInt("page").
		SetShort("p").
		SetOptional(true).
		SetDefault(1).
		SetFlagOnly(true).
		SetUsage("Page number").
		Register(cmd)
	pageSize, _ = ra.NewInt("page-size").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Jobs per page (default: global config page_size, then 10)").
		Register(cmd)
	return search, status, page, pageSize
}

// --- list ---

func runJobList(app *App, query model.JobQuery, jsonOutput bool) {
	ctx, stop := signalContext()
	defer stop()

	page, applicants, err := loadJobListing(ctx, app.Client(), app.Query(query))
	if err != nil {
		app.FatalRemote(err)
	}

	if jsonOutput {
		if err := printJson(NewJobListOutput(page, applicants)); err != nil {
			Fatal(err)
		}
		return
	}

	printJobPage(page, applicants, "")
	if page.Page < page.TotalPages() {
		PrintInfo("More jobs on page %d (--page %d)", page.Page+1, page.Page+1)
	}
}

// loadJobListing fetches a page of jobs and applicant counts concurrently.
func loadJobListing(ctx context.Context, c *client.Client, query model.JobQuery) (*model.JobPage, map[string]int, error) {
	var (
		page       *model.JobPage
		candidates []model.Candidate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = c.ListJobs(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = c.ListCandidates(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return page, countByJob(candidates), nil
}

func countByJob(candidates []model.Candidate) map[string]int {
	counts := make(map[string]int)
	for _, c := range candidates {
		counts[c.JobID]++
	}
	return counts
}

// --- show ---

func runJobShow(app *App, jobRef string, jsonOutput bool) {
	ctx, stop := signalContext()
	defer stop()

	jobID, err := app.ResolveJobID(ctx, jobRef)
	if err != nil {
		app.FatalRemote(err)
	}
	job, candidates, err := loadJobDetail(ctx, app.Client(), jobID)
	if err != nil {
		app.FatalRemote(err)
	}

	if jsonOutput {
		if err := printJson(NewJobDetailOutput(job, candidates)); err != nil {
			Fatal(err)
		}
		return
	}

	const labelWidth = 10
	fmt.Println(TitleBox(job.Title))
	fmt.Println()
	fmt.Println(LabelValue("ID", RenderID(job.ID), labelWidth))
	fmt.Println(LabelValue("Status", RenderStatus(job.Status), labelWidth))
	fmt.Println(LabelValue("Position", fmt.Sprintf("%d", job.Order+1), labelWidth))
	if job.Location != "" {
		fmt.Println(LabelValue("Location", job.Location, labelWidth))
	}
	if len(job.Tags) > 0 {
		fmt.Println(LabelValue("Tags", strings.Join(job.Tags, ", "), labelWidth))
	}
	fmt.Println(LabelValue("Slug", RenderMuted(job.Slug), labelWidth))
	fmt.Println(LabelValue("Created", util.FormatMillis(job.CreatedAtMillis), labelWidth))
	fmt.Println(LabelValue("Updated", util.FormatMillis(job.UpdatedAtMillis), labelWidth))
	fmt.Println()
	fmt.Println(renderDescription(job.Description))
	fmt.Println()

	fmt.Printf("%s %s\n", RenderBold("Applicants"), RenderMuted(fmt.Sprintf("(%d)", len(candidates))))
	for i := range candidates {
		printCandidateLine(&candidates[i], "")
	}
}

// loadJobDetail fetches a job and its applicants concurrently.
func loadJobDetail(ctx context.Context, c *client.Client, jobID string) (*model.Job, []model.Candidate, error) {
	var (
		job        *model.Job
		candidates []model.Candidate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		job, err = c.GetJob(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = c.ListCandidates(gctx, jobID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return job, candidates, nil
}

// --- add ---

type jobAddInput struct {
	title       string
	location    string
	description string
	tags        []string
	archived    bool
}

func runJobAdd(app *App, input jobAddInput, jsonOutput bool) {
	title := strings.TrimSpace(input.title)
	description := input.description
	if title == "" {
		var err error
		title, err = app.Prompter.Input("Job title", "", true)
		if err != nil {
			Fatal(fmt.Errorf("title is required: %w", err))
		}
		// Only ask for the rest when the user is already being prompted.
		if description == "" {
			description, err = app.Prompter.Text("Description", "")
			if err != nil {
				Fatal(err)
			}
		}
	}

	req := model.CreateJobRequest{
		Title:       title,
		Location:    input.location,
		Description: description,
		Tags:        input.tags,
	}
	if input.archived {
		req.Status = model.JobStatusArchived
	}

	ctx, stop := signalContext()
	defer stop()

	job, err := app.Client().CreateJob(ctx, req)
	if err != nil {
		app.FatalRemote(err)
	}

	if jsonOutput {
		if err := printJson(NewJobOutput(job)); err != nil {
			Fatal(err)
		}
		return
	}
	PrintSuccess("Created job %s (%s) at position %d", RenderBold(job.Title), RenderID(job.ID), job.Order+1)
}

// --- edit ---

type jobEditInput struct {
	title       string
	location    string
	description string
	tags        []string
	clearTags   bool
}

func (in jobEditInput) empty() bool {
	return in.title == "" && in.location == "" && in.description == "" && len(in.tags) == 0 && !in.clearTags
}

// request converts flags into a partial update. Unset flags stay nil.
func (in jobEditInput) request() model.UpdateJobRequest {
	var req model.UpdateJobRequest
	if in.title != "" {
		req.Title = &in.title
	}
	if in.location != "" {
		req.Location = &in.location
	}
	if in.description != "" {
		req.Description = &in.description
	}
	if in.clearTags {
		tags := []string{}
		req.Tags = &tags
	} else if len(in.tags) > 0 {
		req.Tags = &in.tags
	}
	return req
}

func runJobEdit(app *App, jobRef string, input jobEditInput, jsonOutput bool) {
	ctx, stop := signalContext()
	defer stop()

	c := app.Client()
	jobID, err := app.ResolveJobID(ctx, jobRef)
	if err != nil {
		app.FatalRemote(err)
	}
	req := input.request()
	if input.empty() {
		job, err := c.GetJob(ctx, jobID)
		if err != nil {
			app.FatalRemote(err)
		}
		var changed bool
		req, changed, err = promptJobEdit(app, job)
		if err != nil {
			Fatal(err)
		}
		if !changed {
			fmt.Println("No changes made")
			return
		}
	}

	job, err := c.UpdateJob(ctx, jobID, req)
	if err != nil {
		app.FatalRemote(err)
	}

	if jsonOutput {
		if err := printJson(NewJobOutput(job)); err != nil {
			Fatal(err)
		}
		return
	}
	PrintSuccess("Updated job %s", RenderID(job.ID))
}

// promptJobEdit asks which field to change and collects the new value.
// Descriptions open in the user's editor.
func promptJobEdit(app *App, job *model.Job) (model.UpdateJobRequest, bool, error) {
	var req model.UpdateJobRequest

	field, err := app.Prompter.Select("Select field to edit", []string{"title", "location", "description", "tags"})
	if err != nil {
		return req, false, err
	}

	switch field {
	case "title":
		title, err := app.Prompter.Input("Title", job.Title, true)
		if err != nil || title == job.Title {
			return req, false, err
		}
		req.Title = &title
	case "location":
		location, err := app.Prompter.Input("Location", job.Location, false)
		if err != nil || location == job.Location {
			return req, false, err
		}
		req.Location = &location
	case "description":
		edited, err := app.Editor.Edit(job.Description)
		if err != nil {
			return req, false, err
		}
		description := strings.TrimSpace(edited)
		if description == job.Description {
			return req, false, nil
		}
		req.Description = &description
	case "tags":
		raw, err := app.Prompter.Input("Tags (comma-separated)", strings.Join(job.Tags, ", "), false)
		if err != nil {
			return req, false, err
		}
		tags := util.NormalizeTags(strings.Split(raw, ","))
		if tags == nil {
			tags = []string{}
		}
		req.Tags = &tags
	}
	return req, true, nil
}

// --- archive / unarchive ---

func runJobSetStatus(app *App, jobRef string, status model.JobStatus, jsonOutput bool) {
	ctx, stop := signalContext()
	defer stop()

	jobID, err := app.ResolveJobID(ctx, jobRef)
	if err != nil {
		app.FatalRemote(err)
	}
	job, err := app.Client().SetJobStatus(ctx, jobID, status)
	if err != nil {
		app.FatalRemote(err)
	}

	if jsonOutput {
		if err := printJson(NewJobOutput(job)); err != nil {
			Fatal(err)
		}
		return
	}
	PrintSuccess("Job %s is now %s", RenderBold(job.Title), RenderStatus(job.Status))
}

// --- delete ---

func runJobDelete(app *App, jobRef string, force, jsonOutput bool) {
	ctx, stop := signalContext()
	defer stop()

	c := app.Client()
	job, err := resolver.NewJobResolver(c).Resolve(ctx, jobRef)
	if err != nil {
		app.FatalRemote(err)
	}

	if !force {
		confirmed, err := app.Prompter.Confirm(fmt.Sprintf("Delete job %q?", job.Title), false)
		if err != nil {
			Fatal(fmt.Errorf("use --force to delete without confirmation: %w", err))
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return
		}
	}

	if err := c.DeleteJob(ctx, job.ID); err != nil {
		app.FatalRemote(err)
	}

	if jsonOutput {
		if err := printJson(NewJobOutput(job)); err != nil {
			Fatal(err)
		}
		return
	}
	PrintSuccess("Deleted job %s (%s)", RenderBold(job.Title), RenderID(job.ID))
}
