package team

import (
	"context"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/wage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// WageCalculator normalizes one compensation description.
type WageCalculator interface {
	Calculate(ctx context.Context, d wage.Description) wage.Result
}

// maxParallelMembers bounds the per-member fan-out.
const maxParallelMembers = 8

var minutesPerHour = decimal.NewFromInt(60)

// =============================================================================
// RESULTS
// =============================================================================

// MemberCost is one active member's normalized wage.
type MemberCost struct {
	MemberID      string `json:"member_id"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	HourlyWage    int64  `json:"hourly_wage"`
	MonthlyIncome int64  `json:"monthly_income"`
	AnnualIncome  int64  `json:"annual_income"`
}

// RoleCost is the byRole contribution of one role.
type RoleCost struct {
	Role          string          `json:"role"`
	Members       int             `json:"members"`
	AverageHourly decimal.Decimal `json:"average_hourly"`
	HourlyCost    decimal.Decimal `json:"hourly_cost"`
	MonthlyCost   decimal.Decimal `json:"monthly_cost"`
	AnnualCost    decimal.Decimal `json:"annual_cost"`
}

// CostCalculation is a team's combined cost under one method. Hourly cost is
// the cost of one hour of the whole team's time.
type CostCalculation struct {
	TeamID        string          `json:"team_id"`
	Method        Method          `json:"method"`
	ActiveMembers int             `json:"active_members"`
	HourlyCost    decimal.Decimal `json:"hourly_cost"`
	MonthlyCost   decimal.Decimal `json:"monthly_cost"`
	AnnualCost    decimal.Decimal `json:"annual_cost"`
	AverageHourly decimal.Decimal `json:"average_hourly"`
	Members       []MemberCost    `json:"members"`
	Roles         []RoleCost      `json:"roles,omitempty"`
}

// TaskCostAnalysis prices one task against its team.
type TaskCostAnalysis struct {
	TaskID           string          `json:"task_id"`
	TeamID           string          `json:"team_id"`
	Method           Method          `json:"method"`
	EstimatedMinutes float64         `json:"estimated_minutes"`
	TeamHourlyCost   decimal.Decimal `json:"team_hourly_cost"`
	AnnualExecutions decimal.Decimal `json:"annual_executions"`
	CostPerExecution decimal.Decimal `json:"cost_per_execution"`
	AnnualCost       decimal.Decimal `json:"annual_cost"`
	AnnualHours      decimal.Decimal `json:"annual_hours"`
}

// TaskOverview summarizes every task of a team.
type TaskOverview struct {
	TeamID          string             `json:"team_id"`
	Method          Method             `json:"method"`
	Tasks           []TaskCostAnalysis `json:"tasks"`
	TotalAnnualCost decimal.Decimal    `json:"total_annual_cost"`
	TotalAnnualHrs  decimal.Decimal    `json:"total_annual_hours"`
	MostExpensive   *TaskCostAnalysis  `json:"most_expensive,omitempty"`
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator combines member wages into team costs. Structural problems such
// as a nil team or a task of another team yield zeroed results, never
// errors.
type Aggregator struct {
	calc   WageCalculator
	logger *zap.Logger
}

// NewAggregator creates an aggregator over a wage calculator.
func NewAggregator(calc WageCalculator, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{calc: calc, logger: logger}
}

// AggregateTeam computes the team's cost under method. Unknown methods fall
// back to individual.
func (a *Aggregator) AggregateTeam(ctx context.Context, t *Team, method Method) *CostCalculation {
	if _, err := ParseMethod(string(method)); err != nil || method == "" {
		method = MethodIndividual
	}
	out := &CostCalculation{
		Method:        method,
		HourlyCost:    decimal.Zero,
		MonthlyCost:   decimal.Zero,
		AnnualCost:    decimal.Zero,
		AverageHourly: decimal.Zero,
		Members:       []MemberCost{},
	}
	if t == nil {
		return out
	}
	out.TeamID = t.ID

	members := a.memberCosts(ctx, t.ActiveMembers())
	out.Members = members
	out.ActiveMembers = len(members)
	if len(members) == 0 {
		return out
	}

	hourly, monthly, annual := sums(members)
	n := decimal.NewFromInt(int64(len(members)))
	out.AverageHourly = mean(hourly, n).Round(0)

	switch method {
	case MethodAverage:
		out.HourlyCost = scale(mean(hourly, n), n)
		out.MonthlyCost = scale(mean(monthly, n), n)
		out.AnnualCost = scale(mean(annual, n), n)
	case MethodByRole:
		out.Roles = byRole(members)
		for _, r := range out.Roles {
			out.HourlyCost = out.HourlyCost.Add(r.HourlyCost)
			out.MonthlyCost = out.MonthlyCost.Add(r.MonthlyCost)
			out.AnnualCost = out.AnnualCost.Add(r.AnnualCost)
		}
	default:
		out.HourlyCost = hourly
		out.MonthlyCost = monthly
		out.AnnualCost = annual
	}
	return out
}

// AnalyzeTask prices task against team. A nil task or team, or a task that
// belongs to another team, yields a zeroed analysis.
func (a *Aggregator) AnalyzeTask(ctx context.Context, task *Task, t *Team, method Method) *TaskCostAnalysis {
	out := &TaskCostAnalysis{
		Method:           method,
		TeamHourlyCost:   decimal.Zero,
		AnnualExecutions: decimal.Zero,
		CostPerExecution: decimal.Zero,
		AnnualCost:       decimal.Zero,
		AnnualHours:      decimal.Zero,
	}
	if task == nil {
		return out
	}
	out.TaskID = task.ID
	out.TeamID = task.TeamID
	out.EstimatedMinutes = task.EstimatedMinutes
	if t == nil || t.ID != task.TeamID {
		a.logger.Debug("task does not belong to team",
			zap.String("task_id", task.ID),
			zap.String("task_team_id", task.TeamID))
		return out
	}

	cost := a.AggregateTeam(ctx, t, method)
	return priceTask(task, cost)
}

// Overview prices every task of the team once against a single aggregation
// and picks the most expensive one. Ties keep the first task encountered.
// Tasks of other teams are skipped.
func (a *Aggregator) Overview(ctx context.Context, t *Team, tasks []Task, method Method) *TaskOverview {
	cost := a.AggregateTeam(ctx, t, method)
	out := &TaskOverview{
		TeamID:          cost.TeamID,
		Method:          cost.Method,
		Tasks:           []TaskCostAnalysis{},
		TotalAnnualCost: decimal.Zero,
		TotalAnnualHrs:  decimal.Zero,
	}
	if t == nil {
		return out
	}

	for i := range tasks {
		if tasks[i].TeamID != t.ID {
			continue
		}
		analysis := priceTask(&tasks[i], cost)
		out.Tasks = append(out.Tasks, *analysis)
		out.TotalAnnualCost = out.TotalAnnualCost.Add(analysis.AnnualCost)
		out.TotalAnnualHrs = out.TotalAnnualHrs.Add(analysis.AnnualHours)
	}

	for i := range out.Tasks {
		if out.MostExpensive == nil || out.Tasks[i].AnnualCost.GreaterThan(out.MostExpensive.AnnualCost) {
			out.MostExpensive = &out.Tasks[i]
		}
	}
	return out
}

// =============================================================================
// HELPERS
// =============================================================================

// memberCosts computes every member's wage in parallel. Results keep the
// member order.
func (a *Aggregator) memberCosts(ctx context.Context, members []Member) []MemberCost {
	results := make([]wage.Result, len(members))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelMembers)
	for i := range members {
		g.Go(func() error {
			results[i] = a.calc.Calculate(gCtx, members[i].Compensation)
			return nil
		})
	}
	_ = g.Wait() // calculations never fail

	out := make([]MemberCost, len(members))
	for i, m := range members {
		out[i] = MemberCost{
			MemberID:      m.ID,
			Name:          m.Name,
			Role:          m.Role,
			HourlyWage:    results[i].HourlyWage,
			MonthlyIncome: results[i].ActualMonthlyIncome,
			AnnualIncome:  results[i].ActualAnnualIncome,
		}
	}
	return out
}

func sums(members []MemberCost) (hourly, monthly, annual decimal.Decimal) {
	for _, m := range members {
		hourly = hourly.Add(decimal.NewFromInt(m.HourlyWage))
		monthly = monthly.Add(decimal.NewFromInt(m.MonthlyIncome))
		annual = annual.Add(decimal.NewFromInt(m.AnnualIncome))
	}
	return hourly, monthly, annual
}

const (
	meanPlaces  = 16
	totalPlaces = 8
)

// mean is the unrounded per-member figure.
func mean(total, n decimal.Decimal) decimal.Decimal {
	return total.DivRound(n, meanPlaces)
}

// scale multiplies a mean by its group size. Rounding to totalPlaces drops
// the division remainder, so an integral sum comes back exactly.
func scale(m, n decimal.Decimal) decimal.Decimal {
	return m.Mul(n).Round(totalPlaces)
}

// byRole groups members by role, sorted by role name.
func byRole(members []MemberCost) []RoleCost {
	groups := make(map[string][]MemberCost)
	for _, m := range members {
		groups[m.Role] = append(groups[m.Role], m)
	}

	roles := make([]RoleCost, 0, len(groups))
	for role, ms := range groups {
		hourly, monthly, annual := sums(ms)
		n := decimal.NewFromInt(int64(len(ms)))
		roles = append(roles, RoleCost{
			Role:          role,
			Members:       len(ms),
			AverageHourly: mean(hourly, n).Round(0),
			HourlyCost:    scale(mean(hourly, n), n),
			MonthlyCost:   scale(mean(monthly, n), n),
			AnnualCost:    scale(mean(annual, n), n),
		})
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Role < roles[j].Role })
	return roles
}

// priceTask: cost per execution = team hourly cost / 60 x minutes. The
// multiplication is done first to keep whole-yen results exact.
func priceTask(task *Task, cost *CostCalculation) *TaskCostAnalysis {
	minutes := decimal.NewFromFloat(nonNegative(task.EstimatedMinutes))
	executions := AnnualExecutions(task.Frequency)
	perExecution := cost.HourlyCost.Mul(minutes).Div(minutesPerHour)

	return &TaskCostAnalysis{
		TaskID:           task.ID,
		TeamID:           task.TeamID,
		Method:           cost.Method,
		EstimatedMinutes: task.EstimatedMinutes,
		TeamHourlyCost:   cost.HourlyCost,
		AnnualExecutions: executions,
		CostPerExecution: perExecution,
		AnnualCost:       perExecution.Mul(executions),
		AnnualHours:      minutes.Mul(executions).Div(minutesPerHour),
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
