// Package config loads the JSON evaluation settings used by the trackeval
// command.
package config
