// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with caarlos0/env tags; Load fills them
// after reading an optional .env file through godotenv.
package config
