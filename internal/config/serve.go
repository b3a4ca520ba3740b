package config

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/viper"
)

type ServeConfig struct {
	Listen           string
	RefreshWait      time.Duration
	RefreshOnStart   bool
	EnablePrometheus bool
	PrometheusAddr   string
}

func (c ServeConfig) Validate() error {
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", c.Listen, err)
	}
	if c.RefreshWait < 0 {
		return fmt.Errorf("refresh wait cannot be negative")
	}
	if c.EnablePrometheus {
		if _, _, err := net.SplitHostPort(c.PrometheusAddr); err != nil {
			return fmt.Errorf("invalid Prometheus address %q: %w", c.PrometheusAddr, err)
		}
		if c.PrometheusAddr == c.Listen {
			return fmt.Errorf("metrics address must differ from the listen address")
		}
	}
	return nil
}

func LoadServeConfigFromCLI() ServeConfig {
	return ServeConfig{
		Listen:           viper.GetString("listen"),
		RefreshWait:      viper.GetDuration("refresh-wait"),
		RefreshOnStart:   viper.GetBool("refresh-on-start"),
		EnablePrometheus: viper.GetBool("enable-prometheus"),
		PrometheusAddr:   viper.GetString("prometheus-addr"),
	}
}
