package ports

import "go.trai.ch/rbwasm/internal/core/domain"

// ConfigLoader layers configuration files over the defaults.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load applies the user config and the project config found in cwd onto base.
	// Missing files are not an error.
	Load(cwd string, base domain.Options) (domain.Options, error)
}
