package reporters

import (
	"fmt"

	"github.com/unicodeguard/unicodeguard/core"
)

func CreateReporter(reportFormat string, queries core.SqlQueries) (core.Reporter, error) {
	if reportFormat == "console" {
		return ConsoleReporter{}, nil
	}
	if reportFormat == "json" {
		return JsonReporter{Queries: queries}, nil
	}
	if reportFormat == "xlsx" {
		return XlsxReporter{}, nil
	}

	return nil, fmt.Errorf("unknown report format: %s", reportFormat)
}
