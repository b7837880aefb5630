// ABOUTME: MCP server setup for the FitLife workout store.
// ABOUTME: Wraps the MCP server with storage and the workout service.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/fitlife/internal/models"
	"github.com/harperreed/fitlife/internal/stats"
	"github.com/harperreed/fitlife/internal/storage"
	"github.com/harperreed/fitlife/internal/workout"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer   *mcp.Server
	repo        storage.Repository
	workouts    *workout.Service
	reconciler  *stats.Reconciler
	defaultUser string
}

// NewServer creates a new MCP server over the given storage. defaultUser is
// the email tools act as when a call names no user.
func NewServer(repo storage.Repository, defaultUser string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitlife",
			Version: "1.0.0",
		},
		nil,
	)

	rec := stats.NewReconciler(repo)
	s := &Server{
		mcpServer:   mcpServer,
		repo:        repo,
		workouts:    workout.NewService(repo, rec),
		reconciler:  rec,
		defaultUser: defaultUser,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// resolveUser finds the user a tool call acts as: the given email, the
// server's default, or the sole user when only one exists.
func (s *Server) resolveUser(email string) (*models.User, error) {
	if email == "" {
		email = s.defaultUser
	}
	if email != "" {
		u, err := s.repo.GetUserByEmail(email)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("unknown user: %s", email)
		}
		return u, nil
	}

	users, err := s.repo.ListUsers()
	if err != nil {
		return nil, err
	}
	if len(users) == 1 {
		return users[0], nil
	}
	return nil, fmt.Errorf("no user specified and no default configured")
}
