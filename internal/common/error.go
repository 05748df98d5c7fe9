package common

import "fmt"

var (
	ErrRootNotConfigured   = fmt.Errorf("root folder id is not configured")
	ErrUnknownBackend      = fmt.Errorf("unknown storage backend")
	ErrUnknownReportFormat = fmt.Errorf("unknown report format")
	ErrUnknownLogLevel     = fmt.Errorf("unknown log level")
	ErrRunNotFound         = fmt.Errorf("run not found")
	ErrInvalidLimit        = fmt.Errorf("limit must be at least 1")
)
