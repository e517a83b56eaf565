package team

import "context"

// Store persists teams, members and tasks. Deleting a team deletes its
// tasks; CreateTask fails with ErrTeamNotFound when the team is missing.
type Store interface {
	CreateTeam(ctx context.Context, t *Team) error
	GetTeam(ctx context.Context, id string) (*Team, error)
	ListTeams(ctx context.Context) ([]Team, error)
	DeleteTeam(ctx context.Context, id string) error

	AddMember(ctx context.Context, teamID string, m Member) error
	RemoveMember(ctx context.Context, teamID, memberID string) error

	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context, teamID string) ([]Task, error)
	DeleteTask(ctx context.Context, id string) error
}
