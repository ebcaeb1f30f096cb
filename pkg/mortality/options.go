package mortality

import "github.com/m-mizutani/goerr/v2"

const (
	DefaultBaselineYear  = 2003
	DefaultYear          = 2012
	DefaultTotalCause    = "Total"
	DefaultExcludedCause = "All Other Causes"
)

// Options controls normalization and the year-over-year derivation.
type Options struct {
	// TotalCause is the aggregate cause dropped at load.
	TotalCause string `yaml:"total_cause" json:"total_cause"`
	// ExcludedCause is left out of the year-over-year change.
	ExcludedCause string `yaml:"excluded_cause" json:"excluded_cause"`
	BaselineYear  int    `yaml:"baseline_year" json:"baseline_year"`
	DefaultYear   int    `yaml:"default_year" json:"default_year"`
}

// DefaultOptions returns the options matching the published dataset.
func DefaultOptions() Options {
	return Options{
		TotalCause:    DefaultTotalCause,
		ExcludedCause: DefaultExcludedCause,
		BaselineYear:  DefaultBaselineYear,
		DefaultYear:   DefaultYear,
	}
}

// Validate validates the options
func (o Options) Validate() error {
	if o.TotalCause == "" {
		return goerr.New("total cause sentinel is required")
	}
	if o.BaselineYear <= 0 {
		return goerr.New("invalid baseline year", goerr.V("baseline_year", o.BaselineYear))
	}
	if o.DefaultYear <= 0 {
		return goerr.New("invalid default year", goerr.V("default_year", o.DefaultYear))
	}
	return nil
}
