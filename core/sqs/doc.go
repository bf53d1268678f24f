// Package sqs wraps the AWS SQS management API behind a narrow interface.
//
// The Client interface exposes only the operations the reconciliation engine
// needs (resolve, create, delete, read/write attributes), which keeps the
// engine testable with the mock in mocks/. NewClient builds a real client
// from the aws-sdk-go-v2 stack; authentication follows the default AWS
// credential chain unless static keys are configured, and a custom endpoint
// can be set for local stacks.
//
// "Queue does not exist" is mapped to the ErrQueueNotFound sentinel so that
// callers can distinguish absence from transport or permission failures.
package sqs
