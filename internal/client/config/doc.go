// Package config loads runtime configuration for the coursekeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-i string     base URL of the identity service
//	-r string     base URL of the resource service
//	-w duration   per-request timeout
//	-s string     session directory name under the home directory
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "5s" or integer nanoseconds:
//
//	{
//	  "identity_url": "http://localhost:5005",
//	  "resource_url": "http://localhost:5006",
//	  "request_timeout": "5s",
//	  "session_dir": ".coursekeeper"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
