package cli

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/amterp/ra"

	"github.com/talentflow/talentflow/internal/api"
	"github.com/talentflow/talentflow/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Start the jobs API server")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetDefault(3000).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("Port to listen on (will try incrementally if in use)").
		Register(cmd)

	ctx.ServeData, _ = ra.NewString("data").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Custom location of the .talentflow directory").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(port int, dataDir string) {
	if err := logging.Init(); err != nil {
		PrintWarning("failed to open log file: %v", err)
	}

	data, err := discoverData(dataDir)
	if err != nil {
		Fatal(err)
	}

	// Find an available port starting from the requested one
	actualPort := findAvailablePort(port)
	if actualPort != port {
		PrintWarning("port %d is in use, using %d", port, actualPort)
	}

	server := api.NewServer(data, actualPort)

	ln, err := net.Listen("tcp", server.Addr())
	if err != nil {
		Fatal(err)
	}

	url := fmt.Sprintf("http://localhost:%d", actualPort)
	fmt.Printf("TalentFlow API running at %s\n", RenderURL(url))
	fmt.Printf("Serving %s\n", RenderMuted(relativeToCwd(data.Paths.DataRoot())))
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signalContext()
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			Fatal(err)
		}
		return
	case <-ctx.Done():
	}

	logging.Logger.Info("shutting down", "addr", server.Addr())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		Fatal(fmt.Errorf("shutdown failed: %w", err))
	}
	<-serveErr
	fmt.Println()
	PrintInfo("Server stopped")
}

// findAvailablePort tries ports starting from startPort until it finds one that's available.
func findAvailablePort(startPort int) int {
	maxAttempts := 100
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		if isPortAvailable(port) {
			return port
		}
	}
	// If we couldn't find a port after maxAttempts, return the original and let it fail naturally
	return startPort
}

// isPortAvailable checks if a port is available by attempting to listen on it.
func isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}
