// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Resolver and planner tuning values left at zero fall back to the named
// defaults in their packages.
package config
