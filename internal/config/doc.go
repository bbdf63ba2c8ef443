// Package config loads event-roster settings from config.toml and the environment.
package config
