/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Engine types that
  already carry JSON tags (wage.Description, wage.Result, insurance.Result,
  team.CostCalculation, ...) are returned as-is; the types below cover the
  requests, the wrappers and the cases where the engine value cannot be
  encoded directly.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Wage:          WageResponse, ValidationResponse
  Qualification: QualificationDTO (infinite payback rendered as null)
  Holidays:      HolidayCalendarDTO, HolidayDTO
  Teams:         CreateTeamRequest, MemberRequest, CreateTaskRequest
  Storage:       PutEnvelopeRequest
  Scenarios:     ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"math"
	"time"

	json "github.com/goccy/go-json"
	"github.com/warp/wage-engine/holiday"
	"github.com/warp/wage-engine/insurance"
	"github.com/warp/wage-engine/qualification"
	"github.com/warp/wage-engine/team"
	"github.com/warp/wage-engine/wage"
)

// =============================================================================
// WAGE
// =============================================================================

// WageResponse is the result of POST /api/wage/calculate.
type WageResponse struct {
	Variant   string            `json:"variant"`
	Result    wage.Result       `json:"result"`
	Insurance *insurance.Result `json:"insurance,omitempty"`
}

// ValidationResponse is the result of POST /api/wage/validate.
type ValidationResponse struct {
	Valid  bool                   `json:"valid"`
	Errors []wage.ValidationError `json:"errors"`
}

// =============================================================================
// QUALIFICATION
// =============================================================================

// QualificationDTO mirrors qualification.Result. PaybackYears is null when
// the investment never pays back.
type QualificationDTO struct {
	Name             string                   `json:"name,omitempty"`
	OpportunityCost  int64                    `json:"opportunity_cost"`
	DirectCost       int64                    `json:"direct_cost"`
	TotalInvestment  int64                    `json:"total_investment"`
	AllowanceBenefit int64                    `json:"allowance_benefit"`
	SalaryBenefit    int64                    `json:"salary_benefit"`
	JobChangeBenefit int64                    `json:"job_change_benefit"`
	AnnualBenefit    int64                    `json:"annual_benefit"`
	PaybackYears     *float64                 `json:"payback_years"`
	TenYearBenefit   int64                    `json:"ten_year_benefit"`
	ROIPercent       float64                  `json:"roi_percent"`
	NPV              int64                    `json:"npv"`
	Evaluation       qualification.Evaluation `json:"evaluation"`
}

func toQualificationDTO(name string, r qualification.Result) QualificationDTO {
	dto := QualificationDTO{
		Name:             name,
		OpportunityCost:  r.OpportunityCost,
		DirectCost:       r.DirectCost,
		TotalInvestment:  r.TotalInvestment,
		AllowanceBenefit: r.AllowanceBenefit,
		SalaryBenefit:    r.SalaryBenefit,
		JobChangeBenefit: r.JobChangeBenefit,
		AnnualBenefit:    r.AnnualBenefit,
		TenYearBenefit:   r.TenYearBenefit,
		ROIPercent:       r.ROIPercent,
		NPV:              r.NPV,
		Evaluation:       r.Evaluation,
	}
	if !math.IsInf(r.PaybackYears, 0) && !math.IsNaN(r.PaybackYears) {
		payback := r.PaybackYears
		dto.PaybackYears = &payback
	}
	return dto
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO is one public holiday.
type HolidayDTO struct {
	Date       string `json:"date"`
	Name       string `json:"name"`
	Substitute bool   `json:"substitute"`
}

// HolidayCalendarDTO is a resolved calendar with its baselines per archetype.
type HolidayCalendarDTO struct {
	Year        int                       `json:"year"`
	Mode        holiday.Mode              `json:"mode"`
	PeriodStart string                    `json:"period_start"`
	PeriodEnd   string                    `json:"period_end"`
	Count       holiday.Count             `json:"count"`
	Baselines   map[holiday.Archetype]int `json:"baselines"`
	Holidays    []HolidayDTO              `json:"holidays"`
}

func toHolidayCalendarDTO(cal *holiday.Calendar) HolidayCalendarDTO {
	dtos := make([]HolidayDTO, 0, len(cal.Holidays))
	for _, h := range cal.Holidays {
		dtos = append(dtos, HolidayDTO{
			Date:       h.Date.Format("2006-01-02"),
			Name:       h.Name,
			Substitute: h.IsSubstitute(),
		})
	}
	return HolidayCalendarDTO{
		Year:        cal.Year,
		Mode:        cal.Mode,
		PeriodStart: cal.Period.Start.Format("2006-01-02"),
		PeriodEnd:   cal.Period.End.Format("2006-01-02"),
		Count:       cal.Count,
		Baselines:   cal.Count.Baselines(),
		Holidays:    dtos,
	}
}

// =============================================================================
// TEAMS / TASKS
// =============================================================================

// MemberRequest describes a member to add. Active defaults to true.
type MemberRequest struct {
	Name         string           `json:"name"`
	Role         string           `json:"role"`
	Active       *bool            `json:"active,omitempty"`
	Compensation wage.Description `json:"compensation"`
}

func (m MemberRequest) toMember() team.Member {
	member := team.NewMember(m.Name, m.Role, m.Compensation)
	if m.Active != nil {
		member.Active = *m.Active
	}
	return member
}

// CreateTeamRequest is the request to create a team.
type CreateTeamRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Members     []MemberRequest `json:"members"`
}

// CreateTaskRequest is the request to create a task.
type CreateTaskRequest struct {
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	EstimatedMinutes float64        `json:"estimated_minutes"`
	Frequency        team.Frequency `json:"frequency"`
}

// =============================================================================
// STORAGE
// =============================================================================

// PutEnvelopeRequest stores data under a key. Enabled defaults to true.
type PutEnvelopeRequest struct {
	Data    json.RawMessage `json:"data"`
	Enabled *bool           `json:"enabled,omitempty"`
}

// =============================================================================
// SCENARIOS / MISC
// =============================================================================

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LoadScenarioRequest is the request to load a scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// HealthDTO is the body of GET /api/health.
type HealthDTO struct {
	Status        string     `json:"status"`
	Time          time.Time  `json:"time"`
	CachedYears   int        `json:"cached_calendars"`
	LastPrefetch  *time.Time `json:"last_prefetch,omitempty"`
	StorageDriver string     `json:"storage_driver"`
}
