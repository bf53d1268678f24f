// Package config handles application configuration loading.
//
// Configuration is assembled from three layers, lowest precedence first:
// struct tag defaults, a .env file in the working directory, and process
// environment variables. Nested keys map to environment variables with
// underscores (e.g. aws.region -> AWS_REGION, database.host -> DATABASE_HOST).
//
// Each subsystem owns its config section (server, aws, storage, log,
// database); this package only composes them and wires the defaults into
// Viper via reflection over the 'default' struct tags.
package config
