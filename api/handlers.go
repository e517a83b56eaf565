/*
handlers.go - HTTP API handlers for the wage engine

PURPOSE:
  Exposes the compensation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Wage:
    POST   /api/wage/calculate          Normalize one description (?variant=static|dynamic)
    POST   /api/wage/validate           Range-check a description

  Insurance / Qualification:
    POST   /api/insurance/calculate     Monthly social-insurance breakdown
    GET    /api/insurance/regions       Region rate table
    POST   /api/qualification/roi       Qualification investment metrics

  Holidays:
    GET    /api/holidays/{year}         Resolved calendar (?mode=calendar|fiscal)
    POST   /api/holidays/cache/clear    Drop resolved calendars

  Teams / Tasks:
    GET    /api/teams                   List teams
    POST   /api/teams                   Create team
    GET    /api/teams/{id}              Team details
    DELETE /api/teams/{id}              Delete team and its tasks
    POST   /api/teams/{id}/members      Add member
    DELETE /api/teams/{id}/members/{memberID}
    GET    /api/teams/{id}/cost         Team cost (?method=individual|average|byRole)
    GET    /api/teams/{id}/tasks        List tasks
    POST   /api/teams/{id}/tasks        Create task
    GET    /api/teams/{id}/tasks/overview
    GET    /api/teams/{id}/export       XLSX report
    GET    /api/tasks/{id}/analysis     Price one task
    DELETE /api/tasks/{id}

  History / Storage:
    GET    /api/history                 Recent calculations (?limit=N)
    GET    /api/storage                 Stored keys
    GET|PUT|DELETE /api/storage/{key}   Versioned envelopes

  Scenarios / Admin:
    GET    /api/scenarios               List demo scenarios
    GET    /api/scenarios/current       Loaded scenario, null if none
    POST   /api/scenarios/load          Load a demo scenario
    POST   /api/scenarios/reset         Clear all data
    GET    /api/health                  Store ping, cache size, last prefetch

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Teams, tasks, history (SQLite)
  - KV: Envelope storage (Redis when configured, SQLite otherwise)
  - Resolver: Holiday calendars shared with the wage calculator
  - Wage / Insurance / Aggregator: Engine components

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors
  Calculations themselves never fail; only input decoding, validation and
  storage can.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/warp/wage-engine/holiday"
	"github.com/warp/wage-engine/insurance"
	"github.com/warp/wage-engine/qualification"
	"github.com/warp/wage-engine/report"
	"github.com/warp/wage-engine/store"
	"github.com/warp/wage-engine/store/sqlite"
	"github.com/warp/wage-engine/team"
	"github.com/warp/wage-engine/wage"
	"go.uber.org/zap"
)

const (
	maxBodyBytes        = 1 << 20
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      *sqlite.Store
	KV         store.KV
	Resolver   *holiday.Resolver
	Wage       *wage.Calculator
	Insurance  *insurance.Calculator
	Aggregator *team.Aggregator
	Scheduler  *PrefetchScheduler

	logger   *zap.Logger
	kvDriver string

	// Track currently loaded scenario
	mu              sync.RWMutex
	currentScenario string
}

// Options configures optional handler dependencies.
type Options struct {
	KV       store.KV // defaults to the SQLite envelope table
	KVDriver string
	Resolver *holiday.Resolver // defaults to the static table
	Logger   *zap.Logger
}

// NewHandler creates a new handler with the given store.
func NewHandler(st *sqlite.Store, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = holiday.NewResolver(nil, nil, logger)
	}
	kv, driver := opts.KV, opts.KVDriver
	if kv == nil {
		kv, driver = st.Envelopes(), "sqlite"
	}

	calc := wage.NewCalculator(resolver, nil, logger)
	return &Handler{
		Store:      st,
		KV:         kv,
		Resolver:   resolver,
		Wage:       calc,
		Insurance:  insurance.NewCalculator(nil, nil),
		Aggregator: team.NewAggregator(calc, logger),
		logger:     logger,
		kvDriver:   driver,
	}
}

// =============================================================================
// WAGE HANDLERS
// =============================================================================

// CalculateWage normalizes one compensation description.
// POST /api/wage/calculate?variant=static|dynamic
func (h *Handler) CalculateWage(w http.ResponseWriter, r *http.Request) {
	var d wage.Description
	if err := decodeJSON(w, r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if errs := wage.Validate(d); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Invalid compensation description", errs)
		return
	}

	resp := WageResponse{Variant: r.URL.Query().Get("variant")}
	switch resp.Variant {
	case "", "dynamic":
		resp.Variant = "dynamic"
		resp.Result = h.Wage.Calculate(r.Context(), d)
	case "static":
		resp.Result = wage.CalculateStatic(d)
	default:
		writeError(w, http.StatusBadRequest, "Unknown variant (use static or dynamic)", nil)
		return
	}
	resp.Insurance = h.Insurance.Calculate(d)

	h.record(r.Context(), "wage", d, resp)
	writeJSON(w, http.StatusOK, resp)
}

// ValidateWage reports every range problem of a description.
// POST /api/wage/validate
func (h *Handler) ValidateWage(w http.ResponseWriter, r *http.Request) {
	var d wage.Description
	if err := decodeJSON(w, r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	errs := wage.Validate(d)
	if errs == nil {
		errs = wage.ValidationErrors{}
	}
	writeJSON(w, http.StatusOK, ValidationResponse{Valid: len(errs) == 0, Errors: errs})
}

// =============================================================================
// INSURANCE / QUALIFICATION HANDLERS
// =============================================================================

// CalculateInsurance returns the monthly insurance breakdown.
// POST /api/insurance/calculate
func (h *Handler) CalculateInsurance(w http.ResponseWriter, r *http.Request) {
	var d wage.Description
	if err := decodeJSON(w, r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if d.Insurance == nil || !d.Insurance.Enabled {
		writeError(w, http.StatusBadRequest, "Insurance is not enabled in the description", nil)
		return
	}
	if _, err := h.Insurance.Rates().Region(d.Insurance.Region); err != nil {
		writeError(w, http.StatusBadRequest, "Unknown insurance region", err)
		return
	}

	res := h.Insurance.Calculate(d)
	h.record(r.Context(), "insurance", d, res)
	writeJSON(w, http.StatusOK, res)
}

// ListRegions returns the region rate table.
// GET /api/insurance/regions
func (h *Handler) ListRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Insurance.Rates().Regions())
}

// CalculateQualification computes qualification ROI metrics.
// POST /api/qualification/roi
func (h *Handler) CalculateQualification(w http.ResponseWriter, r *http.Request) {
	var d qualification.Data
	if err := decodeJSON(w, r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	dto := toQualificationDTO(d.Name, qualification.Calculate(d))
	h.record(r.Context(), "qualification", d, dto)
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// GetHolidays returns a resolved holiday calendar.
// GET /api/holidays/{year}?mode=calendar|fiscal
func (h *Handler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	mode, err := holiday.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mode (use calendar or fiscal)", err)
		return
	}

	cal, err := h.Resolver.Resolve(r.Context(), year, mode)
	if err != nil {
		writeError(w, statusFor(err), "Failed to resolve holidays", err)
		return
	}

	writeJSON(w, http.StatusOK, toHolidayCalendarDTO(cal))
}

// ClearHolidayCache drops every resolved calendar.
// POST /api/holidays/cache/clear
func (h *Handler) ClearHolidayCache(w http.ResponseWriter, r *http.Request) {
	dropped := h.Resolver.CacheSize()
	h.Resolver.ClearCache()
	writeJSON(w, http.StatusOK, map[string]any{"status": "cleared", "dropped": dropped})
}

// =============================================================================
// TEAM HANDLERS
// =============================================================================

// ListTeams returns all teams.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Store.ListTeams(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list teams", err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// CreateTeam creates a team with its initial members.
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Team name is required", nil)
		return
	}

	var errs wage.ValidationErrors
	for i, m := range req.Members {
		errs = append(errs, memberErrors(fmt.Sprintf("members[%d].", i), m)...)
	}
	if len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Invalid member", errs)
		return
	}

	t := team.NewTeam(strings.TrimSpace(req.Name), req.Description)
	for _, m := range req.Members {
		t.Members = append(t.Members, m.toMember())
	}
	if err := h.Store.CreateTeam(r.Context(), t); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create team", err)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

// GetTeam returns a single team.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	t, err := h.Store.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), "Failed to get team", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTeam removes a team and its tasks.
func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTeam(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), "Failed to delete team", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddMember adds a member to a team.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if errs := memberErrors("", req); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Invalid member", errs)
		return
	}

	m := req.toMember()
	if err := h.Store.AddMember(r.Context(), chi.URLParam(r, "id"), m); err != nil {
		writeError(w, statusFor(err), "Failed to add member", err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// RemoveMember removes a member from a team.
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	err := h.Store.RemoveMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "memberID"))
	if err != nil {
		writeError(w, statusFor(err), "Failed to remove member", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// GetTeamCost aggregates a team's cost.
// GET /api/teams/{id}/cost?method=individual|average|byRole
func (h *Handler) GetTeamCost(w http.ResponseWriter, r *http.Request) {
	method, ok := parseMethod(w, r)
	if !ok {
		return
	}
	t, err := h.Store.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), "Failed to get team", err)
		return
	}

	writeJSON(w, http.StatusOK, h.Aggregator.AggregateTeam(r.Context(), t, method))
}

// ExportTeam renders the team cost and task overview as XLSX.
// GET /api/teams/{id}/export?method=...
func (h *Handler) ExportTeam(w http.ResponseWriter, r *http.Request) {
	method, ok := parseMethod(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	t, err := h.Store.GetTeam(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), "Failed to get team", err)
		return
	}
	tasks, err := h.Store.ListTasks(ctx, t.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	buf, name, err := report.Build(report.TeamReport{
		Team:     t,
		Cost:     h.Aggregator.AggregateTeam(ctx, t, method),
		Overview: h.Aggregator.Overview(ctx, t, tasks, method),
		Tasks:    tasks,
	})
	if err != nil {
		h.logger.Error("failed to build team report", zap.String("team_id", t.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// =============================================================================
// TASK HANDLERS
// =============================================================================

// ListTasks returns a team's tasks.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "id")

	if _, err := h.Store.GetTeam(ctx, teamID); err != nil {
		writeError(w, statusFor(err), "Failed to get team", err)
		return
	}
	tasks, err := h.Store.ListTasks(ctx, teamID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// CreateTask creates a task owned by a team.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	task := team.NewTask(chi.URLParam(r, "id"), strings.TrimSpace(req.Name), req.EstimatedMinutes, req.Frequency)
	task.Description = req.Description
	if err := task.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task", err)
		return
	}

	if err := h.Store.CreateTask(r.Context(), task); err != nil {
		writeError(w, statusFor(err), "Failed to create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// GetTaskOverview prices every task of a team.
// GET /api/teams/{id}/tasks/overview?method=...
func (h *Handler) GetTaskOverview(w http.ResponseWriter, r *http.Request) {
	method, ok := parseMethod(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	t, err := h.Store.GetTeam(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), "Failed to get team", err)
		return
	}
	tasks, err := h.Store.ListTasks(ctx, t.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	writeJSON(w, http.StatusOK, h.Aggregator.Overview(ctx, t, tasks, method))
}

// AnalyzeTask prices one task against its team.
// GET /api/tasks/{id}/analysis?method=...
func (h *Handler) AnalyzeTask(w http.ResponseWriter, r *http.Request) {
	method, ok := parseMethod(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	task, err := h.Store.GetTask(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), "Failed to get task", err)
		return
	}
	t, err := h.Store.GetTeam(ctx, task.TeamID)
	if err != nil {
		writeError(w, statusFor(err), "Failed to get team", err)
		return
	}

	writeJSON(w, http.StatusOK, h.Aggregator.AnalyzeTask(ctx, task, t, method))
}

// DeleteTask removes a task.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), "Failed to delete task", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// HISTORY / STORAGE HANDLERS
// =============================================================================

// ListHistory returns the most recent calculations.
// GET /api/history?limit=N
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxHistoryLimit), err)
			return
		}
		limit = n
	}

	records, err := h.Store.ListCalculations(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list history", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// ListKeys returns every stored key.
func (h *Handler) ListKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.KV.Keys(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list keys", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"driver": h.kvDriver, "keys": keys})
}

// GetEnvelope returns the envelope stored under a key.
func (h *Handler) GetEnvelope(w http.ResponseWriter, r *http.Request) {
	env, err := h.KV.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, statusFor(err), "Failed to get key", err)
		return
	}
	if err := env.Check(); err != nil {
		writeError(w, http.StatusConflict, "Stored value was written by a newer version", err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

// PutEnvelope stores data under a key in a fresh envelope.
func (h *Handler) PutEnvelope(w http.ResponseWriter, r *http.Request) {
	var req PutEnvelopeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Data) == 0 {
		writeError(w, http.StatusBadRequest, "data is required", nil)
		return
	}

	env, err := store.Seal(req.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data", err)
		return
	}
	if req.Enabled != nil {
		env.Enabled = *req.Enabled
	}

	if err := h.KV.Put(r.Context(), chi.URLParam(r, "key"), env); err != nil {
		writeError(w, statusFor(err), "Failed to store key", err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

// DeleteEnvelope removes a key.
func (h *Handler) DeleteEnvelope(w http.ResponseWriter, r *http.Request) {
	if err := h.KV.Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
		writeError(w, statusFor(err), "Failed to delete key", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// Health reports store connectivity and cache state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dto := HealthDTO{
		Status:        "ok",
		Time:          time.Now().UTC(),
		CachedYears:   h.Resolver.CacheSize(),
		StorageDriver: h.kvDriver,
	}
	if h.Scheduler != nil {
		if last := h.Scheduler.LastRun(); !last.IsZero() {
			dto.LastPrefetch = &last
		}
	}

	status := http.StatusOK
	if err := h.Store.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		dto.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, dto)
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	h.mu.Lock()
	h.currentScenario = ""
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an ErrorResponse. Validation errors are reported per
// field; other errors as their message.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	var verrs wage.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		resp.Details = verrs.ToMap()
	case err != nil:
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, team.ErrTeamNotFound),
		errors.Is(err, team.ErrTaskNotFound),
		errors.Is(err, team.ErrMemberNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, holiday.ErrNoHolidayData):
		return http.StatusNotFound
	case errors.Is(err, team.ErrInvalidTask),
		errors.Is(err, team.ErrInvalidMethod),
		errors.Is(err, holiday.ErrInvalidMode),
		errors.Is(err, holiday.ErrInvalidYear),
		errors.Is(err, store.ErrInvalidKey),
		errors.Is(err, store.ErrUnsupportedVersion),
		errors.Is(err, insurance.ErrUnknownRegion):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseMethod(w http.ResponseWriter, r *http.Request) (team.Method, bool) {
	method, err := team.ParseMethod(r.URL.Query().Get("method"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid method (use individual, average or byRole)", err)
		return "", false
	}
	return method, true
}

func memberErrors(prefix string, m MemberRequest) wage.ValidationErrors {
	var errs wage.ValidationErrors
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, wage.ValidationError{Field: prefix + "name", Message: "is required"})
	}
	for _, e := range wage.Validate(m.Compensation) {
		errs = append(errs, wage.ValidationError{Field: prefix + "compensation." + e.Field, Message: e.Message})
	}
	return errs
}

// record appends a calculation to the history. Failures are logged only.
func (h *Handler) record(ctx context.Context, kind string, input, result any) {
	if err := h.Store.SaveCalculation(ctx, uuid.NewString(), kind, input, result); err != nil {
		h.logger.Warn("failed to record calculation", zap.String("kind", kind), zap.Error(err))
	}
}
