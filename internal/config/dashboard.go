package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/manifest-network/ledgerdash/internal/peers"
)

type DashboardConfig struct {
	Title          string
	Host           string
	BasePort       int
	Peers          int
	PeerURLs       []string
	FetchTimeout   time.Duration
	MaxConcurrency uint
}

func (c DashboardConfig) Validate() error {
	if c.MaxConcurrency == 0 {
		return fmt.Errorf("max concurrency must be greater than 0")
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch timeout cannot be negative")
	}
	if len(c.PeerURLs) > 0 {
		if len(c.PeerURLs) < 2 {
			return fmt.Errorf("at least 2 peer URLs are required, got %d", len(c.PeerURLs))
		}
		return nil
	}
	if c.Peers < 2 {
		return fmt.Errorf("at least 2 peers are required, got %d", c.Peers)
	}
	if c.Host == "" {
		return fmt.Errorf("missing peer host")
	}
	if c.BasePort <= 0 || c.BasePort+c.Peers-1 > 65535 {
		return fmt.Errorf("invalid base port %d for %d peers", c.BasePort, c.Peers)
	}
	return nil
}

// Registry builds the peer set. Explicit peer URLs take precedence over
// host and base port.
func (c DashboardConfig) Registry() (*peers.Registry, error) {
	if len(c.PeerURLs) > 0 {
		return peers.NewRegistryFromURLs(c.PeerURLs)
	}
	return peers.NewRegistry(c.Host, c.BasePort, c.Peers)
}

func LoadDashboardConfigFromCLI() DashboardConfig {
	return DashboardConfig{
		Title:          viper.GetString("title"),
		Host:           viper.GetString("host"),
		BasePort:       viper.GetInt("base-port"),
		Peers:          viper.GetInt("peers"),
		PeerURLs:       viper.GetStringSlice("peer-url"),
		FetchTimeout:   viper.GetDuration("fetch-timeout"),
		MaxConcurrency: viper.GetUint("max-concurrency"),
	}
}
