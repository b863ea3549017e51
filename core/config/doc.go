// Package config provides configuration management for the Inventory Reconciler.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Storage: S3/MinIO credentials and bucket holding feed files and exports
//   - Log: Logging level and format
//   - Database: MySQL or SQLite connection used for table feeds and exports
//   - Feeds: how delimited and XLSX feeds are decoded
//   - Export: where result sets are written
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
