// ABOUTME: MCP resource implementations for workout data.
// ABOUTME: Provides fitlife://active, fitlife://routines, and fitlife://stats.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// fitlife://active - The active session with its effective exercise list
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitlife://active",
		Name:        "Active Workout",
		Description: "The current workout session and its exercise checklist",
		MIMEType:    "application/json",
	}, s.handleActiveResource)

	// fitlife://routines - All routines with their exercises
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitlife://routines",
		Name:        "Workout Routines",
		Description: "The user's routines with their exercise lists",
		MIMEType:    "application/json",
	}, s.handleRoutinesResource)

	// fitlife://stats - Reconciled usage counters
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitlife://stats",
		Name:        "Workout Statistics",
		Description: "Lifetime workout statistics, reconciled against stored data",
		MIMEType:    "application/json",
	}, s.handleStatsResource)
}

// Resource handlers

func (s *Server) handleActiveResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	user, err := s.resolveUser("")
	if err != nil {
		return nil, err
	}

	session, err := s.workouts.Active(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	var result map[string]interface{}
	if session == nil {
		result = map[string]interface{}{"message": "No active workout."}
	} else {
		exercises, err := s.workouts.Exercises(session.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list exercises: %w", err)
		}
		result = map[string]interface{}{
			"session_id": session.ID,
			"routine_id": session.RoutineID,
			"status":     session.Status,
			"started_at": session.StartedAt.Format(time.RFC3339),
			"exercises":  exercises,
		}
	}

	return marshalResource("fitlife://active", result)
}

func (s *Server) handleRoutinesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	user, err := s.resolveUser("")
	if err != nil {
		return nil, err
	}

	routines, err := s.repo.ListRoutines(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}

	var entries []map[string]interface{}
	for _, r := range routines {
		exercises, err := s.repo.ExercisesOf(r.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list routine exercises: %w", err)
		}
		entries = append(entries, map[string]interface{}{
			"id":        r.ID,
			"name":      r.Name,
			"exercises": exercises,
		})
	}

	return marshalResource("fitlife://routines", map[string]interface{}{
		"routines": entries,
		"count":    len(entries),
	})
}

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	user, err := s.resolveUser("")
	if err != nil {
		return nil, err
	}

	st, err := s.reconciler.Reconcile(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile stats: %w", err)
	}

	return marshalResource("fitlife://stats", st)
}

func marshalResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
