package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/talentflow/talentflow/internal/api"
	"github.com/talentflow/talentflow/internal/client"
	"github.com/talentflow/talentflow/internal/config"
	"github.com/talentflow/talentflow/internal/discovery"
	"github.com/talentflow/talentflow/internal/editor"
	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/internal/logging"
	"github.com/talentflow/talentflow/internal/model"
	"github.com/talentflow/talentflow/internal/prompt"
	"github.com/talentflow/talentflow/internal/resolver"
	"github.com/talentflow/talentflow/internal/store"
)

// App holds the dependencies for commands that talk to the API server.
type App struct {
	GlobalStore  store.GlobalStore
	GlobalConfig *model.GlobalConfig
	Prompter     prompt.Prompter
	Editor       *editor.Editor
	Logger       *slog.Logger
	ServerURL    string

	client *client.Client
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(interactive bool, serverFlag string) (*App, error) {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
	}

	globalStore := store.NewGlobalStore()

	// Load global config with warnings (don't silently ignore errors)
	globalCfg, err := globalStore.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load global config: %v\n", err)
		globalCfg = &model.GlobalConfig{}
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	serverURL := resolveServerURL(serverFlag, os.Getenv, globalCfg)
	c, err := client.New(serverURL, client.WithLogger(logging.Logger))
	if err != nil {
		return nil, err
	}

	return &App{
		GlobalStore:  globalStore,
		GlobalConfig: globalCfg,
		Prompter:     prompter,
		Editor:       editor.NewEditor(globalCfg),
		Logger:       logging.Logger,
		ServerURL:    serverURL,
		client:       c,
	}, nil
}

func newAppOrExit(interactive bool, serverFlag string) *App {
	app, err := NewApp(interactive, serverFlag)
	if err != nil {
		Fatal(err)
	}
	return app
}

// Client returns the API client for the resolved server.
func (a *App) Client() *client.Client {
	return a.client
}

// PageSize returns flagValue if set, else the configured page size.
func (a *App) PageSize(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return a.GlobalConfig.GetPageSize()
}

// Query fills in the configured page size for q.
func (a *App) Query(q model.JobQuery) model.JobQuery {
	q.PageSize = a.PageSize(q.PageSize)
	return q.Normalized()
}

// FatalRemote exits with err, hinting at the server when it was unreachable.
func (a *App) FatalRemote(err error) {
	if err != nil && !client.IsAPIError(err) && !tferr.IsPersist(err) {
		err = fmt.Errorf("%w\nIs 'talentflow serve' running at %s?", err, a.ServerURL)
	}
	Fatal(err)
}

// resolveServerURL picks the API server.
// Order: --server > $TALENTFLOW_SERVER > global config > default.
func resolveServerURL(flagValue string, getenv func(string) string, cfg *model.GlobalConfig) string {
	if flagValue != "" {
		return flagValue
	}
	if env := getenv(config.ServerEnvVar); env != "" {
		return env
	}
	if cfg != nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return config.DefaultServerURL
}

// jobQuery builds a listing query from command flags. Validation of the
// status happens server-side; an unknown value comes back as a 400.
func jobQuery(search, status string, page, pageSize int) model.JobQuery {
	return model.JobQuery{
		Search:   search,
		Status:   model.JobStatus(status),
		Page:     page,
		PageSize: pageSize,
	}
}

// openData wires stores and services for the data directory under the
// current working directory.
func openData(dataDir string) (*api.DataContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return api.BuildDataContext(cwd, dataDir)
}

// ResolveJobID turns a job ID or slug into a job ID.
func (a *App) ResolveJobID(ctx context.Context, idOrSlug string) (string, error) {
	return resolver.NewJobResolver(a.Client()).ResolveID(ctx, idOrSlug)
}

// discoverData finds the nearest initialized data directory at or above the
// current working directory and wires stores and services for it.
func discoverData(dataDir string) (*api.DataContext, error) {
	result, err := discovery.DiscoverProject(dataDir)
	if err != nil {
		return nil, err
	}
	if result == nil {
		cwd, _ := os.Getwd()
		return nil, &tferr.NotInitializedError{Path: config.NewPaths(cwd, dataDir).DataRoot()}
	}
	return api.BuildDataContext(result.ProjectRoot, result.DataLocation)
}

// signalContext returns a context cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
