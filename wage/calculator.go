package wage

import (
	"context"

	"github.com/warp/wage-engine/holiday"
	"go.uber.org/zap"
)

// =============================================================================
// DYNAMIC VARIANT
// =============================================================================

// Calculator is the calendar-aware wage calculator. It is safe for
// concurrent use as long as its Resolver is.
type Calculator struct {
	resolver   *holiday.Resolver
	classifier Classifier
	logger     *zap.Logger
}

// NewCalculator creates a calculator. A nil classifier selects
// DefaultClassifier; a nil logger discards output.
func NewCalculator(resolver *holiday.Resolver, classifier Classifier, logger *zap.Logger) *Calculator {
	if resolver == nil {
		resolver = holiday.NewResolver(nil, nil, logger)
	}
	if classifier == nil {
		classifier = DefaultClassifier
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{resolver: resolver, classifier: classifier, logger: logger}
}

// Resolver exposes the calculator's holiday resolver.
func (c *Calculator) Resolver() *holiday.Resolver {
	return c.resolver
}

// Calculate normalizes d. When d asks for dynamic holidays, the period is
// resolved and the special blocks are counted against the real calendar.
// Resolution failures are logged and the static holiday formula is used
// instead. Calculate never fails.
func (c *Calculator) Calculate(ctx context.Context, d Description) Result {
	if degenerate(d) {
		return Result{Source: SourceStatic}
	}
	if !d.DynamicHolidays.Enabled || d.DynamicHolidays.Year <= 0 {
		return compute(d, staticPlan(d, SourceStatic, true))
	}

	mode := d.DynamicHolidays.Mode
	if mode == "" {
		mode = holiday.ModeCalendar
	}

	cal, err := c.resolver.Resolve(ctx, d.DynamicHolidays.Year, mode)
	if err != nil {
		c.logger.Warn("holiday resolution failed, using static holiday accounting",
			zap.Int("year", d.DynamicHolidays.Year),
			zap.String("mode", string(mode)),
			zap.Error(err))
		return compute(d, staticPlan(d, SourceFallback, true))
	}

	return compute(d, c.dynamicPlan(d, cal))
}

func (c *Calculator) dynamicPlan(d Description, cal *holiday.Calendar) plan {
	base := clamp(d.AnnualHolidays)
	p := plan{
		periodDays: cal.Count.Days,
		source:     SourceDynamic,
		overtime:   true,
	}

	archetype, ok := c.classifier.Classify(base, cal.Count)
	if !ok {
		p.specialDays = staticSpecialDays(d.SpecialHolidays, base)
		return p
	}
	p.archetype = archetype
	p.specialDays = dynamicSpecialDays(d.SpecialHolidays, cal, archetype)
	return p
}
