package insurance

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// RATE TABLE - Loaded from YAML
// =============================================================================

//go:embed regions.yaml
var embeddedRates []byte

// ErrUnknownRegion is returned by RateTable.Region for a region not in the
// table.
var ErrUnknownRegion = errors.New("unknown region")

// EmploymentRates are the employment insurance rates in percent.
type EmploymentRates struct {
	EmployeeRate float64 `yaml:"employee_rate" json:"employee_rate"`
	EmployerRate float64 `yaml:"employer_rate" json:"employer_rate"`
}

// Levies are the resident-tax rate in percent and the fixed per-capita
// charges in yen per year.
type Levies struct {
	Rate            float64 `yaml:"rate" json:"rate"`
	PrefecturalLevy int64   `yaml:"prefectural_levy" json:"prefectural_levy"`
	MunicipalLevy   int64   `yaml:"municipal_levy" json:"municipal_levy"`
	ForestLevy      int64   `yaml:"forest_levy" json:"forest_levy"`
}

// PerCapita returns the sum of the fixed charges.
func (l Levies) PerCapita() int64 {
	return l.PrefecturalLevy + l.MunicipalLevy + l.ForestLevy
}

// Rates is the resolved rate set of one region.
type Rates struct {
	Region          string          `json:"region"`
	Name            string          `json:"name"`
	HealthRate      float64         `json:"health_rate"`
	PensionRate     float64         `json:"pension_rate"`
	Employment      EmploymentRates `json:"employment"`
	WorkersCompRate float64         `json:"workers_comp_rate"`
	ResidentTax     Levies          `json:"resident_tax"`
}

type defaultsDoc struct {
	PensionRate     float64         `yaml:"pension_rate"`
	Employment      EmploymentRates `yaml:"employment"`
	WorkersCompRate float64         `yaml:"workers_comp_rate"`
	ResidentTax     Levies          `yaml:"resident_tax"`
}

type regionDoc struct {
	Name            string  `yaml:"name"`
	HealthRate      float64 `yaml:"health_rate"`
	PrefecturalLevy int64   `yaml:"prefectural_levy"`
	MunicipalLevy   int64   `yaml:"municipal_levy"`
}

type ratesDoc struct {
	Defaults defaultsDoc          `yaml:"defaults"`
	Regions  map[string]regionDoc `yaml:"regions"`
}

// RateTable holds the rate set of every known region.
type RateTable struct {
	regions map[string]Rates
}

// LoadRates parses a YAML rate document.
func LoadRates(r io.Reader) (*RateTable, error) {
	var doc ratesDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode rate table: %w", err)
	}
	if len(doc.Regions) == 0 {
		return nil, errors.New("rate table has no regions")
	}

	table := &RateTable{regions: make(map[string]Rates, len(doc.Regions))}
	for key, reg := range doc.Regions {
		if reg.HealthRate <= 0 {
			return nil, fmt.Errorf("region %q: health_rate must be positive", key)
		}
		levies := doc.Defaults.ResidentTax
		if reg.PrefecturalLevy > 0 {
			levies.PrefecturalLevy = reg.PrefecturalLevy
		}
		if reg.MunicipalLevy > 0 {
			levies.MunicipalLevy = reg.MunicipalLevy
		}
		id := normalizeRegion(key)
		table.regions[id] = Rates{
			Region:          id,
			Name:            reg.Name,
			HealthRate:      reg.HealthRate,
			PensionRate:     doc.Defaults.PensionRate,
			Employment:      doc.Defaults.Employment,
			WorkersCompRate: doc.Defaults.WorkersCompRate,
			ResidentTax:     levies,
		}
	}
	return table, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *RateTable
)

// DefaultRates returns the embedded rate table.
func DefaultRates() *RateTable {
	defaultOnce.Do(func() {
		t, err := LoadRates(bytes.NewReader(embeddedRates))
		if err != nil {
			panic(fmt.Sprintf("insurance: embedded rate table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Region returns the rates of a region, matched case-insensitively.
func (t *RateTable) Region(region string) (Rates, error) {
	r, ok := t.regions[normalizeRegion(region)]
	if !ok {
		return Rates{}, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	return r, nil
}

// Regions returns every region sorted by key.
func (t *RateTable) Regions() []Rates {
	out := make([]Rates, 0, len(t.regions))
	for _, r := range t.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out
}

func normalizeRegion(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
