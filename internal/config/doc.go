// Package config manages user-level settings stored at ~/.skillpack/config.yaml.
// Every key can also be supplied through a SKILLPACK_-prefixed environment
// variable, which takes precedence over the file.
package config
