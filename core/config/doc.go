// Package config loads and resolves the application configuration.
//
// Conversion settings (defaults, input/output locations, object schemas and
// export declarations) come from a TOML file. Infrastructure settings
// (storage, database, logging, serve) come from environment variables,
// optionally seeded from a .env file, with the same keys also accepted in
// the TOML file.
//
// # Usage
//
//	cfg, err := config.Load("config.toml")
//	if err != nil {
//	    return err
//	}
//	if problems := cfg.Validate(); len(problems) > 0 {
//	    ...
//	}
//
// Default values declared on struct tags are registered with Viper before
// reading, so every key is visible to AutomaticEnv even when absent from
// the file.
package config
