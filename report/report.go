/*
Package report renders team cost figures as an Excel workbook.

SHEETS:
  Summary  team, method and combined hourly/monthly/annual cost
  Members  each active member's normalized wage
  Roles    per-role figures (byRole method only)
  Tasks    every task priced against the team, plus totals

The workbook is written to a buffer; the HTTP layer sets the download
headers.

SEE ALSO:
  - team/aggregator.go: Produces the figures rendered here
*/
package report

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/team"
	"github.com/xuri/excelize/v2"
)

var ErrNoTeam = errors.New("report requires a team and its cost")

const (
	SheetSummary = "Summary"
	SheetMembers = "Members"
	SheetRoles   = "Roles"
	SheetTasks   = "Tasks"
)

var (
	memberHeader = []string{"Name", "Role", "Hourly Wage", "Monthly Income", "Annual Income"}
	roleHeader   = []string{"Role", "Members", "Average Hourly", "Hourly Cost", "Monthly Cost", "Annual Cost"}
	taskHeader   = []string{"Task", "Minutes", "Executions / Year", "Cost / Execution", "Annual Cost", "Annual Hours"}
)

// TeamReport is the input of one workbook. Overview and Tasks may be nil.
type TeamReport struct {
	Team     *team.Team
	Cost     *team.CostCalculation
	Overview *team.TaskOverview
	Tasks    []team.Task
}

// Build renders the workbook and returns it with a suggested file name.
func Build(r TeamReport) (*bytes.Buffer, string, error) {
	if r.Team == nil || r.Cost == nil {
		return nil, "", ErrNoTeam
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetSummary)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}
	w := &sheetWriter{f: f, header: headerStyle}

	w.summary(r)
	w.members(r.Cost)
	if len(r.Cost.Roles) > 0 {
		w.roles(r.Cost.Roles)
	}
	if r.Overview != nil {
		w.tasks(r.Overview, r.Tasks)
	}
	if w.err != nil {
		return nil, "", w.err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, fileName(r.Team.Name), nil
}

// sheetWriter keeps the first error so rendering reads top to bottom.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) set(sheet string, col, row int, v any) {
	if w.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(sheet, name, v); err != nil {
		w.err = fmt.Errorf("failed to write %s!%s: %w", sheet, name, err)
	}
}

func (w *sheetWriter) headerRow(sheet string, row int, header []string) {
	for i, h := range header {
		w.set(sheet, i+1, row, h)
	}
	if w.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(header), row)
	if err := w.f.SetCellStyle(sheet, first, last, w.header); err != nil {
		w.err = err
		return
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := w.f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		w.err = err
	}
}

func (w *sheetWriter) newSheet(name string) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(name); err != nil {
		w.err = fmt.Errorf("failed to create sheet: %w", err)
	}
}

func (w *sheetWriter) summary(r TeamReport) {
	c := r.Cost
	rows := [][2]any{
		{"Team", r.Team.Name},
		{"Method", string(c.Method)},
		{"Active Members", c.ActiveMembers},
		{"Hourly Cost", num(c.HourlyCost)},
		{"Monthly Cost", num(c.MonthlyCost)},
		{"Annual Cost", num(c.AnnualCost)},
		{"Average Hourly", num(c.AverageHourly)},
	}
	if r.Overview != nil {
		rows = append(rows,
			[2]any{"Task Annual Cost", num(r.Overview.TotalAnnualCost)},
			[2]any{"Task Annual Hours", num(r.Overview.TotalAnnualHrs)},
		)
	}
	for i, kv := range rows {
		w.set(SheetSummary, 1, i+1, kv[0])
		w.set(SheetSummary, 2, i+1, kv[1])
	}
	if w.err == nil {
		w.err = w.f.SetColWidth(SheetSummary, "A", "B", 22)
	}
}

func (w *sheetWriter) members(c *team.CostCalculation) {
	w.newSheet(SheetMembers)
	w.headerRow(SheetMembers, 1, memberHeader)
	for i, m := range c.Members {
		row := i + 2
		w.set(SheetMembers, 1, row, m.Name)
		w.set(SheetMembers, 2, row, m.Role)
		w.set(SheetMembers, 3, row, m.HourlyWage)
		w.set(SheetMembers, 4, row, m.MonthlyIncome)
		w.set(SheetMembers, 5, row, m.AnnualIncome)
	}
}

func (w *sheetWriter) roles(roles []team.RoleCost) {
	w.newSheet(SheetRoles)
	w.headerRow(SheetRoles, 1, roleHeader)
	for i, rc := range roles {
		row := i + 2
		w.set(SheetRoles, 1, row, rc.Role)
		w.set(SheetRoles, 2, row, rc.Members)
		w.set(SheetRoles, 3, row, num(rc.AverageHourly))
		w.set(SheetRoles, 4, row, num(rc.HourlyCost))
		w.set(SheetRoles, 5, row, num(rc.MonthlyCost))
		w.set(SheetRoles, 6, row, num(rc.AnnualCost))
	}
}

func (w *sheetWriter) tasks(o *team.TaskOverview, tasks []team.Task) {
	names := make(map[string]string, len(tasks))
	for _, t := range tasks {
		names[t.ID] = t.Name
	}

	w.newSheet(SheetTasks)
	w.headerRow(SheetTasks, 1, taskHeader)
	row := 2
	for _, a := range o.Tasks {
		name := names[a.TaskID]
		if name == "" {
			name = a.TaskID
		}
		w.set(SheetTasks, 1, row, name)
		w.set(SheetTasks, 2, row, a.EstimatedMinutes)
		w.set(SheetTasks, 3, row, num(a.AnnualExecutions))
		w.set(SheetTasks, 4, row, num(a.CostPerExecution))
		w.set(SheetTasks, 5, row, num(a.AnnualCost))
		w.set(SheetTasks, 6, row, num(a.AnnualHours))
		row++
	}
	w.set(SheetTasks, 1, row, "Total")
	w.set(SheetTasks, 5, row, num(o.TotalAnnualCost))
	w.set(SheetTasks, 6, row, num(o.TotalAnnualHrs))
}

func num(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

func fileName(teamName string) string {
	base := strings.Trim(unsafeFileChars.ReplaceAllString(teamName, "_"), "_")
	if base == "" {
		base = "team"
	}
	return fmt.Sprintf("team-cost_%s.xlsx", base)
}
