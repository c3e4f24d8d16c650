// Package logging builds the structured logger shared by the client.
package logging

import (
	"fmt"
	"io"
	"time"

	"charm.land/log/v2"
)

// New returns a timestamped logger writing to w at the named level
// (debug, info, warn or error).
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "dvrclient",
	}), nil
}
