package holiday

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHolidayData is returned when neither the provider nor the static
	// table has data for the requested year.
	ErrNoHolidayData = errors.New("no holiday data for year")

	// ErrInvalidMode is returned for an unknown calendar mode.
	ErrInvalidMode = errors.New("invalid calendar mode")

	// ErrInvalidYear is returned for years outside the supported range.
	ErrInvalidYear = errors.New("invalid year")

	// ErrProviderUnavailable is the sentinel wrapped by ProviderError.
	ErrProviderUnavailable = errors.New("holiday provider unavailable")
)

// ProviderError describes a failed lookup against an external provider.
type ProviderError struct {
	Year       int
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("holiday provider failed for %d: %v", e.Year, e.Err)
	}
	return fmt.Sprintf("holiday provider failed for %d: status %d", e.Year, e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	return ErrProviderUnavailable
}
