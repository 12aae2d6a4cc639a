// Package config defines the application configuration structure and
// handles loading configuration from the environment and config files.
package config
