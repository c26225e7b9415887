package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
)

// Server manages the MCP server lifecycle. It exposes the scanner over
// stdio and keeps the most recent scan's outcome for follow-up queries.
type Server struct {
	version string
	scan    ScanFunc
	mcp     *server.MCPServer

	mu   sync.RWMutex
	last *Outcome
}

// NewServer creates a new MCP server with the given scan function.
func NewServer(version string, scanFn ScanFunc) (*Server, error) {
	if scanFn == nil {
		return nil, fmt.Errorf("scan function is required")
	}

	s := &Server{
		version: version,
		scan:    scanFn,
	}

	mcpServer := server.NewMCPServer(
		"deadwood-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	AddScanProjectTool(mcpServer, s)
	AddListIssuesTool(mcpServer, s)
	s.mcp = mcpServer

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// Start MCP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// setOutcome records the most recent scan for list_issues.
func (s *Server) setOutcome(outcome *Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = outcome
}

// outcome returns the most recent scan, nil before the first scan_project.
func (s *Server) outcome() *Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
