/*
scenarios_test.go - Tests for demo scenarios

Each scenario must load into a clean database and produce teams whose cost
can be aggregated.
*/
package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/wage-engine/team"
)

func loadTestScenario(t *testing.T, router http.Handler, id string) {
	t.Helper()

	rec := do(t, router, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: id})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestScenario_SmallTeam(t *testing.T) {
	h, router := setupTestHandler(t)
	ctx := context.Background()

	// GIVEN: The small team scenario
	loadTestScenario(t, router, "small-team")

	// THEN: One team with three active members
	teams, err := h.Store.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Len(t, teams[0].ActiveMembers(), 3)

	cost := h.Aggregator.AggregateTeam(ctx, &teams[0], team.MethodIndividual)
	assert.Equal(t, int64(1469), cost.Members[0].HourlyWage)
}

func TestScenario_RoleMix(t *testing.T) {
	h, router := setupTestHandler(t)
	ctx := context.Background()

	loadTestScenario(t, router, "role-mix")

	teams, err := h.Store.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)

	// THEN: The inactive engineer is excluded and roles are grouped
	cost := h.Aggregator.AggregateTeam(ctx, &teams[0], team.MethodByRole)
	assert.Equal(t, 5, cost.ActiveMembers)
	require.Len(t, cost.Roles, 3)
	for _, rc := range cost.Roles {
		if rc.Role == "engineer" {
			assert.Equal(t, 3, rc.Members)
		}
	}
}

func TestScenario_RecurringTasks(t *testing.T) {
	h, router := setupTestHandler(t)
	ctx := context.Background()

	loadTestScenario(t, router, "recurring-tasks")

	teams, err := h.Store.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)

	tasks, err := h.Store.ListTasks(ctx, teams[0].ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 6)

	overview := h.Aggregator.Overview(ctx, &teams[0], tasks, team.MethodAverage)
	assert.Len(t, overview.Tasks, 6)
	assert.True(t, overview.TotalAnnualCost.IsPositive())
	require.NotNil(t, overview.MostExpensive)
}

func TestScenario_ReloadReplacesData(t *testing.T) {
	// GIVEN: One scenario loaded
	h, router := setupTestHandler(t)
	loadTestScenario(t, router, "recurring-tasks")

	// WHEN: Loading another
	loadTestScenario(t, router, "small-team")

	// THEN: Only the second scenario's data remains
	teams, err := h.Store.ListTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Product Squad", teams[0].Name)

	rec := do(t, router, http.MethodGet, "/api/scenarios/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "small-team", decode[ScenarioDTO](t, rec).ID)
}

func TestScenario_Unknown(t *testing.T) {
	_, router := setupTestHandler(t)

	rec := do(t, router, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenario_CurrentClearedByReset(t *testing.T) {
	_, router := setupTestHandler(t)

	rec := do(t, router, http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, "null\n", rec.Body.String())

	loadTestScenario(t, router, "role-mix")
	do(t, router, http.MethodPost, "/api/scenarios/reset", nil)

	rec = do(t, router, http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, "null\n", rec.Body.String())
}

func TestScenario_AllScenariosLoadWithoutError(t *testing.T) {
	_, router := setupTestHandler(t)

	rec := do(t, router, http.MethodGet, "/api/scenarios", nil)
	list := decode[[]ScenarioDTO](t, rec)
	require.Len(t, list, len(scenarioLoaders))

	for _, s := range list {
		t.Run(s.ID, func(t *testing.T) {
			loadTestScenario(t, router, s.ID)

			rec := do(t, router, http.MethodGet, "/api/teams", nil)
			teams := decode[[]team.Team](t, rec)
			require.NotEmpty(t, teams)

			rec = do(t, router, http.MethodGet, "/api/teams/"+teams[0].ID+"/cost?method=average", nil)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
