package factory

import (
	"fmt"

	"jobharvest/internal/collector"
	"jobharvest/internal/collector/datacareer"
	"jobharvest/internal/collector/jobup"
	"jobharvest/internal/config"
	"jobharvest/internal/logging"
	"jobharvest/pkg/utils"
)

// New returns the collector registered under the given source name.
func New(source string, cfg *config.Config, logger logging.Logger) (collector.Collector, error) {
	switch source {
	case "jobup":
		return jobup.NewCollector(cfg, logger), nil
	case "datacareer":
		return datacareer.NewCollector(cfg, logger), nil
	default:
		return nil, utils.NewBadRequestError(fmt.Sprintf("unknown source %q (supported: %v)", source, SupportedSources()))
	}
}

func SupportedSources() []string {
	return []string{"jobup", "datacareer"}
}
