package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/talentflow/talentflow/internal/client"
	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/reorder"
)

// moveResult is the outcome of one `job move`.
type moveResult struct {
	JobID string
	From  int
	To    int
	// Jobs is the page after the move: the optimistic order when the server
	// accepted it, the reloaded server order when it did not.
	Jobs []model.Job
	// Position is the job's view index in Jobs, or -1 when a reload moved it
	// off the page.
	Position int
	// Err is the rejection when the server refused the move.
	Err error
}

func runJobMove(app *App, query model.JobQuery, from, to int, jsonOutput bool) {
	ctx, stop := signalContext()
	defer stop()

	// Positions are 1-based as printed by `job list`.
	result, err := moveJob(ctx, app.Client(), app.Query(query), from-1, to-1, app.Logger)
	if err != nil {
		app.FatalRemote(err)
	}

	if jsonOutput {
		if err := printJson(NewMoveOutput(result)); err != nil {
			Fatal(err)
		}
		if result.Err != nil {
			os.Exit(1)
		}
		return
	}

	page := &model.JobPage{Data: result.Jobs}
	if result.Err != nil {
		PrintWarning("Move was rejected, showing the current order instead: %v", result.Err)
		var perr *tferr.PersistError
		if errors.As(result.Err, &perr) && perr.ReloadErr != nil {
			Fatal(fmt.Errorf("could not reload jobs: %w", perr.ReloadErr))
		}
		if result.Position >= 0 {
			PrintInfo("%s is at position %d", RenderID(result.JobID), result.Position+1)
		}
		printMovedPage(page, result.JobID)
		os.Exit(1)
	}

	if from == to {
		PrintInfo("Job is already at position %d", to)
	} else {
		PrintSuccess("Moved %s from position %d to %d", RenderID(result.JobID), from, to)
	}
	printMovedPage(page, result.JobID)
}

// moveJob loads the page described by query into a reorder controller and
// moves the job at view index from to view index to. A server rejection is
// reported in the result, not as an error; the result then carries the
// reloaded order.
func moveJob(ctx context.Context, c *client.Client, query model.JobQuery, from, to int, logger *slog.Logger) (*moveResult, error) {
	source := client.NewJobSource(c, query)
	ctrl := reorder.NewController[model.Job](source, reorder.WithLogger[model.Job](logger))
	if err := ctrl.Load(ctx); err != nil {
		return nil, err
	}

	items := ctrl.Items()
	if len(items) == 0 {
		return nil, fmt.Errorf("no jobs on page %d", query.Page)
	}
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, tferr.InvalidField("position", fmt.Sprintf("must be between 1 and %d", len(items)))
	}

	result := &moveResult{JobID: items[from].ID, From: from, To: to}
	jobs, err := ctrl.Move(ctx, from, to)
	if err != nil && !tferr.IsPersist(err) {
		return nil, err
	}
	result.Jobs = jobs
	result.Position = ctrl.IndexOf(result.JobID)
	result.Err = err
	return result, nil
}

func printMovedPage(page *model.JobPage, highlightID string) {
	for i := range page.Data {
		job := &page.Data[i]
		fmt.Println(formatJobLine(i+1, job, 0, job.ID == highlightID))
	}
}

// --- watch ---

func runJobWatch(app *App, query model.JobQuery) {
	ctx, stop := signalContext()
	defer stop()

	c := app.Client()
	source := client.NewJobSource(c, app.Query(query))
	ctrl := reorder.NewController[model.Job](source, reorder.WithLogger[model.Job](app.Logger))
	if err := ctrl.Load(ctx); err != nil {
		app.FatalRemote(err)
	}
	printWatchSnapshot(ctrl.Items(), source.Total())
	PrintInfo("Watching %s for changes (Ctrl+C to stop)", RenderURL(app.ServerURL))

	err := c.Watch(ctx, func(event model.ChangeEvent) {
		handleWatchEvent(ctx, ctrl, event, func(jobs []model.Job) {
			printWatchSnapshot(jobs, source.Total())
		})
	})
	if err != nil {
		app.FatalRemote(err)
	}
}

// handleWatchEvent reloads the order when event touched a job or the board
// and hands the fresh order to show. Candidate changes are only announced.
func handleWatchEvent(ctx context.Context, ctrl *reorder.Controller[model.Job], event model.ChangeEvent, show func([]model.Job)) {
	if !event.AffectsOrdering() {
		PrintInfo("%s %s %s", event.Kind, RenderID(event.ID), event.Op)
		return
	}
	if err := ctrl.Load(ctx); err != nil {
		if ctx.Err() == nil {
			PrintError("reload failed: %v", err)
		}
		return
	}
	show(ctrl.Items())
}

func printWatchSnapshot(jobs []model.Job, total int) {
	stamp := time.Now().Format("15:04:05")
	fmt.Printf("\n%s %s\n", RenderBold("Jobs"), RenderMuted(fmt.Sprintf("(%s, %s)", pluralize(total, "job"), stamp)))
	if len(jobs) == 0 {
		PrintInfo("No jobs found")
		return
	}
	printMovedPage(&model.JobPage{Data: jobs}, "")
}
