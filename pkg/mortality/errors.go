package mortality

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagDataLoad marks a failure to load the source table. Loading never
	// returns partial data.
	ErrTagDataLoad = goerr.NewTag("data_load")
	// ErrTagSchema marks a source whose header does not match the expected columns.
	ErrTagSchema = goerr.NewTag("schema")
	// ErrTagInvalidSelection marks a selection outside the loaded data's choices.
	ErrTagInvalidSelection = goerr.NewTag("invalid_selection")
	// ErrTagStaleSnapshot marks a snapshot that cannot serve the requested options.
	ErrTagStaleSnapshot = goerr.NewTag("stale_snapshot")
)
