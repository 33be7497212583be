// Package config loads process-level settings for an OpenCrabs agent from
// a YAML file, with environment overrides for the values operators change
// most often. Code-level knobs stay on functional options; this package
// only covers what a deployment needs to set before the process starts.
package config
