// Package config loads typed configuration structs from environment variables.
//
// It wraps github.com/joho/godotenv (optional `.env` file) and
// github.com/caarlos0/env/v11 (struct tag parsing). Every package that needs
// configuration declares its own struct next to the code it configures, for
// example mongo.Config or file.Config, and the process entry points load them:
//
//	var dbCfg mongo.Config
//	config.MustLoad(&dbCfg)
//
// Parsed values are cached per type for the lifetime of the process. Reset
// clears the cache, which tests use after changing the environment.
package config
