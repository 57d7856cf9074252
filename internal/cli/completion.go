package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/amterp/ra"

	"github.com/talentflow/talentflow/internal/discovery"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/store"
)

// completionCtx provides lightweight store access for shell completion.
// Completion functions run during ParseOrExit, before NewApp() is called,
// and must not wait on a server, so job IDs come from the local data
// directory when there is one.
type completionCtx struct {
	once     sync.Once
	jobStore *store.FileJobStore
	err      error
}

var compCtx completionCtx

func initCompletionCtx() {
	compCtx.once.Do(func() {
		result, err := discovery.DiscoverProject(dataDirFromArgs(os.Args))
		if err != nil {
			compCtx.err = err
			return
		}
		if result == nil {
			compCtx.err = fmt.Errorf("no local data directory")
			return
		}
		compCtx.jobStore = store.NewJobStore(result.Paths())
	})
}

// completeJobs returns local job IDs matching the given prefix.
func completeJobs(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	if compCtx.err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}

	jobs, err := compCtx.jobStore.List()
	if err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}

	ids := make([]string, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.ID)
	}
	sort.Strings(ids)
	return filterPrefix(ids, toComplete), ra.CompletionDirectiveNoFileComp
}

// completeStages returns pipeline stages matching the given prefix.
func completeStages(toComplete string) ([]string, ra.CompletionDirective) {
	stages := make([]string, 0, len(model.Stages()))
	for _, s := range model.Stages() {
		stages = append(stages, string(s))
	}
	return filterPrefix(stages, toComplete), ra.CompletionDirectiveNoFileComp
}

func filterPrefix(values []string, prefix string) []string {
	var result []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			result = append(result, v)
		}
	}
	return result
}

// dataDirFromArgs scans the argument list for an explicit -d/--data flag value.
func dataDirFromArgs(args []string) string {
	for i, arg := range args {
		// --data=value or -d=value (skip empty values so the default applies)
		if strings.HasPrefix(arg, "--data=") {
			if v := strings.TrimPrefix(arg, "--data="); v != "" {
				return v
			}
		}
		if strings.HasPrefix(arg, "-d=") {
			if v := strings.TrimPrefix(arg, "-d="); v != "" {
				return v
			}
		}
		// --data value or -d value
		if (arg == "--data" || arg == "-d") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// registerCompletion adds the "talentflow completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
