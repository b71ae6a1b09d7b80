// internal/workers/prospects/generate-prospects/config.go
package generateprospects

import (
	"time"

	"prospect-dashboard/internal/common/config"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
	DefaultMode   string
	DefaultCount  int
}

func LoadConfig(appCfg *config.Config) *Config {
	wc := config.GetWorkerConfig(appCfg, TaskType)
	return &Config{
		Enabled:       wc.Enabled,
		MaxJobsActive: wc.MaxJobsActive,
		Timeout:       config.GetDuration(wc.Timeout),
		DefaultMode:   appCfg.Generator.Mode,
		DefaultCount:  appCfg.Generator.Count,
	}
}
