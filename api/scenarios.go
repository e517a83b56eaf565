/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	teams and recurring tasks for demos. Each scenario creates teams with
	members on different compensation shapes and prices tasks against them.

AVAILABLE SCENARIOS:

	small-team:      Two engineers and a designer, plain monthly salaries
	role-mix:        Several members per role, shows the byRole method
	recurring-tasks: A team with daily, weekly and monthly tasks
	benefits-heavy:  Allowances, bonuses, overtime and insurance enabled
	calendar-aware:  Dynamic holiday accounting against the real calendar

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create teams with members
 3. Create tasks owned by the teams

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "role-mix"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Register it in 'scenarioLoaders'

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: ResetDatabase handler
  - team/aggregator.go: What the scenarios demonstrate
*/
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/warp/wage-engine/holiday"
	"github.com/warp/wage-engine/team"
	"github.com/warp/wage-engine/wage"
	"go.uber.org/zap"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "small-team",
		Name:        "Small Team",
		Description: "Two engineers and a designer on plain monthly salaries",
		Category:    "teams",
	},
	{
		ID:          "role-mix",
		Name:        "Role Mix",
		Description: "Several members per role, one inactive, for the byRole method",
		Category:    "teams",
	},
	{
		ID:          "recurring-tasks",
		Name:        "Recurring Tasks",
		Description: "Daily stand-up, weekly reports and monthly closing priced against a team",
		Category:    "tasks",
	},
	{
		ID:          "benefits-heavy",
		Name:        "Benefits Heavy",
		Description: "Itemized allowances, bonuses, overtime and social insurance",
		Category:    "wage",
	},
	{
		ID:          "calendar-aware",
		Name:        "Calendar Aware",
		Description: "Dynamic holiday accounting for calendar and fiscal 2025",
		Category:    "wage",
	},
}

type scenarioLoader func(ctx context.Context, h *Handler) error

var scenarioLoaders = map[string]scenarioLoader{
	"small-team":      loadSmallTeamScenario,
	"role-mix":        loadRoleMixScenario,
	"recurring-tasks": loadRecurringTasksScenario,
	"benefits-heavy":  loadBenefitsHeavyScenario,
	"calendar-aware":  loadCalendarAwareScenario,
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	current := h.currentScenario
	h.mu.RUnlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current})
}

// LoadScenario resets the database and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	load, ok := scenarioLoaders[req.ScenarioID]
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", fmt.Errorf("scenario %q", req.ScenarioID))
		return
	}

	if err := h.loadScenario(r.Context(), req.ScenarioID, load); err != nil {
		h.logger.Error("failed to load scenario", zap.String("scenario", req.ScenarioID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
	})
}

func (h *Handler) loadScenario(ctx context.Context, id string, load scenarioLoader) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	h.currentScenario = ""

	if err := load(ctx, h); err != nil {
		return err
	}
	h.currentScenario = id
	return nil
}

// =============================================================================
// COMPENSATION HELPERS
// =============================================================================

// monthlySalary is a plain monthly salary with 120 holidays and 8h days.
func monthlySalary(amount float64) wage.Description {
	return wage.Description{
		SalaryType:       wage.SalaryMonthly,
		SalaryAmount:     amount,
		AnnualHolidays:   120,
		WorkingHours:     8,
		WorkingHoursUnit: wage.HoursDaily,
	}
}

func annualSalary(amount, holidays, hoursPerDay float64) wage.Description {
	return wage.Description{
		SalaryType:       wage.SalaryAnnual,
		SalaryAmount:     amount,
		AnnualHolidays:   holidays,
		WorkingHours:     hoursPerDay,
		WorkingHoursUnit: wage.HoursDaily,
	}
}

func (h *Handler) createTeam(ctx context.Context, name, description string, members ...team.Member) (*team.Team, error) {
	t := team.NewTeam(name, description)
	t.Members = members
	if err := h.Store.CreateTeam(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create team %s: %w", name, err)
	}
	return t, nil
}

func (h *Handler) createTasks(ctx context.Context, teamID string, tasks ...*team.Task) error {
	for _, task := range tasks {
		task.TeamID = teamID
		if err := h.Store.CreateTask(ctx, task); err != nil {
			return fmt.Errorf("failed to create task %s: %w", task.Name, err)
		}
	}
	return nil
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func loadSmallTeamScenario(ctx context.Context, h *Handler) error {
	_, err := h.createTeam(ctx, "Product Squad", "Two engineers and a designer",
		team.NewMember("Aiko Tanaka", "engineer", monthlySalary(240000)),
		team.NewMember("Kenji Sato", "engineer", monthlySalary(300000)),
		team.NewMember("Yui Suzuki", "designer", monthlySalary(280000)),
	)
	return err
}

func loadRoleMixScenario(ctx context.Context, h *Handler) error {
	retired := team.NewMember("Hiroshi Ito", "engineer", monthlySalary(450000))
	retired.Active = false

	_, err := h.createTeam(ctx, "Platform Team", "Mixed roles for byRole aggregation",
		team.NewMember("Aiko Tanaka", "engineer", monthlySalary(240000)),
		team.NewMember("Kenji Sato", "engineer", monthlySalary(300000)),
		team.NewMember("Mei Kobayashi", "engineer", annualSalary(6000000, 125, 8)),
		team.NewMember("Yui Suzuki", "designer", monthlySalary(280000)),
		team.NewMember("Sora Watanabe", "manager", annualSalary(9000000, 120, 8)),
		retired,
	)
	return err
}

func loadRecurringTasksScenario(ctx context.Context, h *Handler) error {
	t, err := h.createTeam(ctx, "Back Office", "Recurring operational work",
		team.NewMember("Rin Yamamoto", "accountant", monthlySalary(260000)),
		team.NewMember("Daichi Nakamura", "accountant", monthlySalary(320000)),
		team.NewMember("Emi Kato", "lead", annualSalary(7200000, 120, 8)),
	)
	if err != nil {
		return err
	}

	return h.createTasks(ctx, t.ID,
		team.NewTask("", "Daily stand-up", 15, team.Frequency{Type: team.FrequencyDaily, Interval: 1}),
		team.NewTask("", "Expense review", 45, team.Frequency{
			Type: team.FrequencyWeekly, Interval: 1, DaysOfWeek: []int{1, 3, 5},
		}),
		team.NewTask("", "Weekly report", 30, team.Frequency{Type: team.FrequencyWeekly, Interval: 1}),
		team.NewTask("", "Monthly closing", 240, team.Frequency{Type: team.FrequencyMonthly, Interval: 1, DayOfMonth: 25}),
		team.NewTask("", "Quarterly audit prep", 480, team.Frequency{Type: team.FrequencyMonthly, Interval: 3}),
		team.NewTask("", "Year-end adjustment", 960, team.Frequency{Type: team.FrequencyYearly, Interval: 1, MonthOfYear: 12}),
	)
}

func loadBenefitsHeavyScenario(ctx context.Context, h *Handler) error {
	withBenefits := func(d wage.Description, housing, family float64) wage.Description {
		d.BenefitsEnabled = true
		d.Welfare = wage.Welfare{Unit: wage.AmountMonthly, Method: wage.WelfareItemized}
		d.Allowances = wage.Allowances{Housing: housing, Family: family, Commuting: 15000}
		d.Bonuses = wage.Bonuses{Summer: 400000, Winter: 500000}
		d.Overtime = &wage.Overtime{Normal: 1, Night: 0.25}
		d.Insurance = &wage.Insurance{Enabled: true, Region: "tokyo", Dependents: 1}
		return d
	}

	_, err := h.createTeam(ctx, "Sales Team", "Allowances, bonuses and overtime",
		team.NewMember("Takumi Yoshida", "sales", withBenefits(monthlySalary(280000), 20000, 10000)),
		team.NewMember("Nana Yamada", "sales", withBenefits(monthlySalary(310000), 20000, 0)),
		team.NewMember("Ryo Matsumoto", "manager", withBenefits(monthlySalary(420000), 30000, 20000)),
	)
	return err
}

func loadCalendarAwareScenario(ctx context.Context, h *Handler) error {
	dynamic := func(d wage.Description, mode holiday.Mode) wage.Description {
		d.DynamicHolidays = wage.DynamicHolidays{Enabled: true, Year: 2025, Mode: mode}
		d.SpecialHolidays = wage.SpecialHolidays{GoldenWeek: true, Summer: true, YearEnd: true}
		return d
	}

	t, err := h.createTeam(ctx, "Calendar Team", "Calendar and fiscal 2025 holiday accounting",
		team.NewMember("Haruto Inoue", "engineer", dynamic(monthlySalary(300000), holiday.ModeCalendar)),
		team.NewMember("Mio Kimura", "engineer", dynamic(monthlySalary(300000), holiday.ModeFiscal)),
		team.NewMember("Sota Hayashi", "support", dynamic(annualSalary(4200000, 105, 8), holiday.ModeCalendar)),
	)
	if err != nil {
		return err
	}

	return h.createTasks(ctx, t.ID,
		team.NewTask("", "On-call handover", 20, team.Frequency{Type: team.FrequencyDaily, Interval: 1}),
	)
}
