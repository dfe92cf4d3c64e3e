// Package config loads the fieldpaths command configuration from defaults,
// an optional YAML file, FIELDPATHS_* environment variables and flag
// overrides, in increasing order of precedence.
//
// Example config file:
//
//	log:
//	  level: debug
//	analyze:
//	  packages: [./internal/...]
//	  terminals: [github.com/google/uuid.UUID]
//	output:
//	  format: json
//	  max_depth: 4
package config
