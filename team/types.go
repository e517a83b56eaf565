/*
Package team aggregates member wages into team costs and prices recurring
tasks.

KEY CONCEPTS IN THIS FILE (types.go):
  - Team:      An ordered list of members
  - Member:    One compensation description plus role and active flag
  - Task:      A recurring piece of work owned by exactly one team
  - Frequency: How often a task runs, converted to executions per year
  - Method:    How member wages are combined into a team figure

AGGREGATION METHODS (active members only):
  individual  sum of every member's own result
  average     mean of the members' figures x member count
  byRole      per role: mean x group size, summed over roles

  average and byRole are flat-rate planning estimates. They reconcile with
  individual only for homogeneous teams or roles, and are kept distinct on
  purpose.

OWNERSHIP:
  A task references its team by ID. Deleting a team deletes its tasks;
  creating a task for a missing team fails with ErrTeamNotFound.

SEE ALSO:
  - frequency.go:  Executions per year
  - aggregator.go: Team cost, task analysis, task overview
  - store.go:      Persistence contract (implemented by store/sqlite)
*/
package team

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/warp/wage-engine/wage"
)

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrTaskNotFound   = errors.New("task not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidTask    = errors.New("invalid task")
	ErrInvalidMethod  = errors.New("invalid aggregation method")
)

// =============================================================================
// METHOD
// =============================================================================

type Method string

const (
	MethodIndividual Method = "individual"
	MethodAverage    Method = "average"
	MethodByRole     Method = "byRole"
)

// ParseMethod parses a method name. An empty string means individual.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.TrimSpace(s)) {
	case "", MethodIndividual:
		return MethodIndividual, nil
	case MethodAverage:
		return MethodAverage, nil
	case MethodByRole:
		return MethodByRole, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

// =============================================================================
// TEAM / MEMBER
// =============================================================================

type Member struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Role         string           `json:"role"`
	Active       bool             `json:"active"`
	JoinedAt     time.Time        `json:"joined_at"`
	Compensation wage.Description `json:"compensation"`
}

type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Members     []Member  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTeam creates a team with a fresh ID.
func NewTeam(name, description string) *Team {
	now := time.Now().UTC()
	return &Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewMember creates an active member with a fresh ID.
func NewMember(name, role string, comp wage.Description) Member {
	return Member{
		ID:           uuid.NewString(),
		Name:         name,
		Role:         role,
		Active:       true,
		JoinedAt:     time.Now().UTC(),
		Compensation: comp,
	}
}

// ActiveMembers returns the active members in order.
func (t *Team) ActiveMembers() []Member {
	if t == nil {
		return nil
	}
	var out []Member
	for _, m := range t.Members {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}

// =============================================================================
// TASK
// =============================================================================

type Task struct {
	ID               string    `json:"id"`
	TeamID           string    `json:"team_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	EstimatedMinutes float64   `json:"estimated_minutes"`
	Frequency        Frequency `json:"frequency"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewTask creates a task with a fresh ID.
func NewTask(teamID, name string, minutes float64, freq Frequency) *Task {
	return &Task{
		ID:               uuid.NewString(),
		TeamID:           teamID,
		Name:             name,
		EstimatedMinutes: minutes,
		Frequency:        freq,
		CreatedAt:        time.Now().UTC(),
	}
}

// Validate checks the fields a task needs to be priced.
func (t *Task) Validate() error {
	switch {
	case strings.TrimSpace(t.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidTask)
	case t.TeamID == "":
		return fmt.Errorf("%w: team_id is required", ErrInvalidTask)
	case t.EstimatedMinutes < 0 || math.IsNaN(t.EstimatedMinutes) || math.IsInf(t.EstimatedMinutes, 0):
		return fmt.Errorf("%w: estimated_minutes must be a non-negative number", ErrInvalidTask)
	}
	return t.Frequency.Validate()
}
