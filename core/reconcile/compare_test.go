package reconcile_test

import (
	"testing"

	"queue-manager/core/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestDifferentScalar(t *testing.T) {
	// Identical values
	assert.False(t, reconcile.Different("120", "120", reconcile.KindScalar))

	// Differing values
	assert.True(t, reconcile.Different("120", "30", reconcile.KindScalar))

	// Case must not matter (booleans are stored as "true"/"True" depending
	// on who wrote them last)
	assert.False(t, reconcile.Different("true", "True", reconcile.KindScalar))
	assert.False(t, reconcile.Different("false", "FALSE", reconcile.KindScalar))
	assert.True(t, reconcile.Different("true", "false", reconcile.KindScalar))

	// Desired value against an attribute that was never set
	assert.True(t, reconcile.Different("120", "", reconcile.KindScalar))
}

func TestDifferentJSONKeyOrder(t *testing.T) {
	desired := `{"deadLetterTargetArn":"arn:aws:sqs:eu-west-1:123456789012:dead","maxReceiveCount":5}`

	// Same document, different key order and whitespace in the remote string
	remote := `{
		"maxReceiveCount": 5,
		"deadLetterTargetArn": "arn:aws:sqs:eu-west-1:123456789012:dead"
	}`

	assert.False(t, reconcile.Different(desired, remote, reconcile.KindJSON))
}

func TestDifferentJSONContent(t *testing.T) {
	desired := `{"maxReceiveCount":5}`

	assert.True(t, reconcile.Different(desired, `{"maxReceiveCount":3}`, reconcile.KindJSON))

	// No remote document at all
	assert.True(t, reconcile.Different(desired, "", reconcile.KindJSON))

	// Unparsable remote value is treated as no existing document
	assert.True(t, reconcile.Different(desired, "not-json{", reconcile.KindJSON))
}
