// Package config loads the project-local .puid.toml file that supplies
// defaults for the puid commands. Command-line flags take precedence over
// anything read here.
package config
