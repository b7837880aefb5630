// ABOUTME: Gesture commands over the active session and their dispatch.
// ABOUTME: Replaces per-widget callbacks with one explicit command enum.
package workout

import (
	"fmt"

	"github.com/google/uuid"
)

// Gesture is a user input command aimed at the active workout session.
type Gesture int

const (
	// SwipeComplete marks the targeted exercise completed.
	SwipeComplete Gesture = iota
	// SwipeRemove hides the targeted exercise from the session.
	SwipeRemove
	// ShakeReset wipes all of the user's sessions.
	ShakeReset
)

// String returns the gesture name for logs and errors.
func (g Gesture) String() string {
	switch g {
	case SwipeComplete:
		return "swipe-complete"
	case SwipeRemove:
		return "swipe-remove"
	case ShakeReset:
		return "shake-reset"
	default:
		return fmt.Sprintf("gesture(%d)", int(g))
	}
}

// GestureResult reports what a dispatched gesture did.
type GestureResult struct {
	SessionCompleted bool
	SessionsReset    bool
}

// HandleGesture dispatches one gesture. Swipe gestures need a session and
// an exercise target; shake acts on all of the user's sessions and ignores
// the targets.
func (s *Service) HandleGesture(g Gesture, userID, sessionID, exerciseID uuid.UUID) (*GestureResult, error) {
	switch g {
	case SwipeComplete:
		completed, err := s.CompleteExercise(sessionID, exerciseID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g, err)
		}
		return &GestureResult{SessionCompleted: completed}, nil
	case SwipeRemove:
		completed, err := s.RemoveExercise(sessionID, exerciseID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g, err)
		}
		return &GestureResult{SessionCompleted: completed}, nil
	case ShakeReset:
		if err := s.ResetAll(userID); err != nil {
			return nil, fmt.Errorf("%s: %w", g, err)
		}
		return &GestureResult{SessionsReset: true}, nil
	default:
		return nil, fmt.Errorf("unknown gesture: %s", g)
	}
}
