package dataset

import "fmt"

// DataSourceError reports a listing source that is missing, unreadable or
// malformed. The application cannot run without its data.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }
