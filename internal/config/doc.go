// Package config provides configuration management for nslook.
//
// The package uses a Provider interface to abstract configuration loading, with the
// primary implementation being filesystem-based configuration via YAML files.
//
// # Configuration Structure
//
// Configuration is structured as follows:
//
//	resolver:
//	  server: ""                      # Resolver address; empty means discover it
//	  resolv_conf: /etc/resolv.conf   # Where to discover the resolver
//	  timeout: 5s                     # Bound on a single UDP exchange
//	query:
//	  record_type: A                  # A, AAAA or MX
//	  all_sections: false             # Also report authority/additional addresses
//
// # Basic Usage
//
// Load configuration using the default path (~/.nslook/config.yaml):
//
//	cfg, err := config.New().Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Write a default configuration file to get started:
//
//	err := config.New().Init()
//
// # Configuration Validation
//
// Validation reports every problem at once:
//   - resolv.conf path must not be empty
//   - server must not contain whitespace
//   - timeout must be between 100ms and 1m
//   - record type must be one of A, AAAA, MX
//
// The record type check is stricter than the command line, where an unknown
// type silently becomes an A query.
//
// # Default Configuration
//
// If no configuration file exists, the following defaults are used:
//   - Server: discovered from resolv.conf
//   - resolv.conf: /etc/resolv.conf
//   - Timeout: 5 seconds
//   - Record type: A
//
// Keys missing from an existing file keep their defaults.
package config
