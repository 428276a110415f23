// Package config provides configuration management for the greeting services.
//
// Configuration is loaded from environment variables (optionally seeded from
// a .env file) and validated on startup. All configuration options have
// sensible defaults for development.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
