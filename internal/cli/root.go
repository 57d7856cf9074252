package cli

import (
	"os"

	"github.com/amterp/ra"

	"github.com/talentflow/talentflow/internal/model"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	Server         *string
	Json           *bool

	// init command
	InitUsed *bool
	InitData *string
	InitName *string
	InitSeed *bool

	// serve command
	ServeUsed *bool
	ServePort *int
	ServeData *string

	// job command
	JobUsed *bool

	// job list
	JobListUsed     *bool
	JobListSearch   *string
	JobListStatus   *string
	JobListPage     *int
	JobListPageSize *int

	// job show
	JobShowUsed *bool
	JobShowID   *string

	// job add
	JobAddUsed        *bool
	JobAddTitle       *string
	JobAddLocation    *string
	JobAddDescription *string
	JobAddTags        *[]string
	JobAddArchived    *bool

	// job edit
	JobEditUsed        *bool
	JobEditID          *string
	JobEditTitle       *string
	JobEditLocation    *string
	JobEditDescription *string
	JobEditTags        *[]string
	JobEditClearTags   *bool

	// job archive / unarchive
	JobArchiveUsed   *bool
	JobArchiveID     *string
	JobUnarchiveUsed *bool
	JobUnarchiveID   *string

	// job delete
	JobDeleteUsed  *bool
	JobDeleteID    *string
	JobDeleteForce *bool

	// job move
	JobMoveUsed     *bool
	JobMoveFrom     *int
	JobMoveTo       *int
	JobMoveSearch   *string
	JobMoveStatus   *string
	JobMovePage     *int
	JobMovePageSize *int

	// job watch
	JobWatchUsed   *bool
	JobWatchSearch *string
	JobWatchStatus *string

	// candidate command
	CandidateUsed *bool

	// candidate list
	CandidateListUsed *bool
	CandidateListJob  *string

	// candidate add
	CandidateAddUsed  *bool
	CandidateAddName  *string
	CandidateAddEmail *string
	CandidateAddJob   *string
	CandidateAddStage *string

	// candidate stage
	CandidateStageUsed       *bool
	CandidateStageID         *string
	CandidateStageValue      *string
	CandidateStageAssessment *string

	// stats command
	StatsUsed *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("talentflow")
	cmd.SetDescription("Job postings, candidates and the hiring dashboard")

	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.Server, _ = ra.NewString("server").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("API server URL (default: $TALENTFLOW_SERVER, then global config, then http://localhost:3000)").
		Register(cmd, ra.WithGlobal(true))

	ctx.Json, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print machine-readable JSON").
		Register(cmd, ra.WithGlobal(true))

	registerInit(cmd, ctx)
	registerServe(cmd, ctx)
	registerJob(cmd, ctx)
	registerCandidate(cmd, ctx)
	registerStats(cmd, ctx)
	registerCompletion(cmd, ctx)

	cmd.ParseOrExit(os.Args[1:])

	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	interactive := !*ctx.NonInteractive
	server := *ctx.Server
	jsonOutput := *ctx.Json

	switch {
	case *ctx.InitUsed:
		runInit(*ctx.InitData, *ctx.InitName, *ctx.InitSeed, jsonOutput)

	case *ctx.ServeUsed:
		if jsonOutput {
			warnJsonNotSupported("serve")
		}
		runServe(*ctx.ServePort, *ctx.ServeData)

	case *ctx.JobListUsed:
		runJobList(newAppOrExit(interactive, server),
			jobQuery(*ctx.JobListSearch, *ctx.JobListStatus, *ctx.JobListPage, *ctx.JobListPageSize),
			jsonOutput)

	case *ctx.JobShowUsed:
		runJobShow(newAppOrExit(interactive, server), *ctx.JobShowID, jsonOutput)

	case *ctx.JobAddUsed:
		runJobAdd(newAppOrExit(interactive, server), jobAddInput{
			title:       *ctx.JobAddTitle,
			location:    *ctx.JobAddLocation,
			description: *ctx.JobAddDescription,
			tags:        *ctx.JobAddTags,
			archived:    *ctx.JobAddArchived,
		}, jsonOutput)

	case *ctx.JobEditUsed:
		runJobEdit(newAppOrExit(interactive, server), *ctx.JobEditID, jobEditInput{
			title:       *ctx.JobEditTitle,
			location:    *ctx.JobEditLocation,
			description: *ctx.JobEditDescription,
			tags:        *ctx.JobEditTags,
			clearTags:   *ctx.JobEditClearTags,
		}, jsonOutput)

	case *ctx.JobArchiveUsed:
		runJobSetStatus(newAppOrExit(interactive, server), *ctx.JobArchiveID, model.JobStatusArchived, jsonOutput)

	case *ctx.JobUnarchiveUsed:
		runJobSetStatus(newAppOrExit(interactive, server), *ctx.JobUnarchiveID, model.JobStatusActive, jsonOutput)

	case *ctx.JobDeleteUsed:
		runJobDelete(newAppOrExit(interactive, server), *ctx.JobDeleteID, *ctx.JobDeleteForce, jsonOutput)

	case *ctx.JobMoveUsed:
		runJobMove(newAppOrExit(interactive, server),
			jobQuery(*ctx.JobMoveSearch, *ctx.JobMoveStatus, *ctx.JobMovePage, *ctx.JobMovePageSize),
			*ctx.JobMoveFrom, *ctx.JobMoveTo, jsonOutput)

	case *ctx.JobWatchUsed:
		if jsonOutput {
			warnJsonNotSupported("job watch")
		}
		runJobWatch(newAppOrExit(interactive, server),
			jobQuery(*ctx.JobWatchSearch, *ctx.JobWatchStatus, 1, model.MaxPageSize))

	case *ctx.CandidateListUsed:
		runCandidateList(newAppOrExit(interactive, server), *ctx.CandidateListJob, jsonOutput)

	case *ctx.CandidateAddUsed:
		runCandidateAdd(newAppOrExit(interactive, server), candidateAddInput{
			name:  *ctx.CandidateAddName,
			email: *ctx.CandidateAddEmail,
			jobID: *ctx.CandidateAddJob,
			stage: *ctx.CandidateAddStage,
		}, jsonOutput)

	case *ctx.CandidateStageUsed:
		runCandidateStage(newAppOrExit(interactive, server),
			*ctx.CandidateStageID, *ctx.CandidateStageValue, *ctx.CandidateStageAssessment, jsonOutput)

	case *ctx.StatsUsed:
		runStats(newAppOrExit(interactive, server), jsonOutput)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)
	}
}
