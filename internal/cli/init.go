package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amterp/ra"

	"github.com/talentflow/talentflow/internal/service"
	"github.com/talentflow/talentflow/internal/store"
)

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Initialize TalentFlow data in the current directory")

	ctx.InitData, _ = ra.NewString("data").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Custom location for the .talentflow directory (relative path)").
		Register(cmd)

	ctx.InitName, _ = ra.NewString("name").
		SetShort("n").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Name of the job board (default: jobs)").
		Register(cmd)

	ctx.InitSeed, _ = ra.NewBool("seed").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Add sample jobs and candidates to an empty board").
		Register(cmd)

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

func runInit(dataDir, name string, seed, jsonOutput bool) {
	if dataDir != "" && filepath.IsAbs(dataDir) {
		Fatal(fmt.Errorf("--data must be a relative path, got %s", dataDir))
	}

	data, err := openData(dataDir)
	if err != nil {
		Fatal(err)
	}

	initService := service.NewInitService(data.BoardStore, store.NewGlobalStore())
	created, err := initService.Initialize(name)
	if err != nil {
		Fatal(err)
	}

	seeded := 0
	if seed {
		seeded, err = service.Seed(data.JobService, data.CandidateService)
		if err != nil {
			Fatal(err)
		}
	}

	if jsonOutput {
		if err := printJson(InitOutput{DataDir: data.Paths.DataRoot(), Created: created, Seeded: seeded}); err != nil {
			Fatal(err)
		}
		return
	}

	dataRoot := relativeToCwd(data.Paths.DataRoot())
	if created {
		PrintSuccess("Initialized TalentFlow in %s", dataRoot)
	} else {
		PrintInfo("TalentFlow already initialized in %s", dataRoot)
	}
	if seed {
		if seeded == 0 {
			PrintInfo("Board already has jobs, skipped sample data")
		} else {
			PrintSuccess("Added %d sample jobs", seeded)
		}
	}
	if created {
		PrintInfo("Start the API with %s", RenderBold("talentflow serve"))
	}
}

// relativeToCwd shortens path for display when it lives under the working directory.
func relativeToCwd(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
