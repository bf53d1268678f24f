package sqs

// Config holds configuration for the AWS SQS connection.
type Config struct {
	// Region is the AWS region the queues live in (e.g., eu-west-1).
	Region string `mapstructure:"region" default:"us-east-1"`
	// Endpoint overrides the SQS endpoint URL (e.g., for LocalStack).
	// Empty uses the default AWS endpoint for the region.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is a static access key ID. Empty falls back to the
	// default AWS credential chain (env, shared config, instance role).
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the static secret access key paired with AccessKey.
	SecretKey string `mapstructure:"secret_key" default:""`
	// TimeoutSeconds is the per-request HTTP timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
