package reconcile

import "strconv"

// ValueKind classifies how an attribute value is compared.
type ValueKind int

const (
	// KindScalar compares case-insensitive string forms.
	KindScalar ValueKind = iota

	// KindJSON compares canonicalized JSON documents.
	KindJSON
)

// ManagedAttribute maps one desired-spec field to its remote attribute key.
// The catalog below is the single source of truth for which attributes the
// synchronizer manages; adding an attribute means adding a row, not logic.
type ManagedAttribute struct {
	// Key is the remote API attribute name.
	Key string

	// Field is the logical spec field name, used in logs and reports.
	Field string

	// Kind selects the comparison strategy.
	Kind ValueKind

	// FifoOnly restricts the attribute to FIFO queues.
	FifoOnly bool

	// Value extracts the normalized desired value from a spec.
	// ok is false when the caller did not set the field.
	Value func(s *DesiredSpec) (value string, ok bool)
}

// Catalog is the fixed, ordered list of managed attributes. The synchronizer
// always evaluates every row in this order, which keeps run output and test
// expectations deterministic.
var Catalog = []ManagedAttribute{
	{
		Key:   "VisibilityTimeout",
		Field: "visibility_timeout",
		Kind:  KindScalar,
		Value: func(s *DesiredSpec) (string, bool) { return intValue(s.VisibilityTimeout) },
	},
	{
		Key:   "MessageRetentionPeriod",
		Field: "message_retention_period",
		Kind:  KindScalar,
		Value: func(s *DesiredSpec) (string, bool) { return intValue(s.MessageRetentionPeriod) },
	},
	{
		Key:   "MaximumMessageSize",
		Field: "maximum_message_size",
		Kind:  KindScalar,
		Value: func(s *DesiredSpec) (string, bool) { return intValue(s.MaximumMessageSize) },
	},
	{
		Key:   "DelaySeconds",
		Field: "delivery_delay",
		Kind:  KindScalar,
		Value: func(s *DesiredSpec) (string, bool) { return intValue(s.DeliveryDelay) },
	},
	{
		Key:   "ReceiveMessageWaitTimeSeconds",
		Field: "receive_message_wait_time",
		Kind:  KindScalar,
		Value: func(s *DesiredSpec) (string, bool) { return intValue(s.ReceiveMessageWaitTime) },
	},
	{
		Key:   "Policy",
		Field: "policy",
		Kind:  KindJSON,
		Value: func(s *DesiredSpec) (string, bool) { return jsonValue(s.Policy) },
	},
	{
		Key:   "RedrivePolicy",
		Field: "redrive_policy",
		Kind:  KindJSON,
		Value: func(s *DesiredSpec) (string, bool) { return jsonValue(s.RedrivePolicy) },
	},
	{
		Key:      "ContentBasedDeduplication",
		Field:    "content_based_deduplication",
		Kind:     KindScalar,
		FifoOnly: true,
		Value:    func(s *DesiredSpec) (string, bool) { return boolValue(s.ContentBasedDeduplication) },
	},
}

// intValue normalizes an optional integer to its decimal string form.
func intValue(p *int) (string, bool) {
	if p == nil {
		return "", false
	}
	return strconv.Itoa(*p), true
}

// boolValue normalizes an optional bool to the lowercase form the remote
// API uses ("true"/"false").
func boolValue(p *bool) (string, bool) {
	if p == nil {
		return "", false
	}
	return strconv.FormatBool(*p), true
}

// jsonValue normalizes an optional JSON document to its canonical serialized
// form (sorted keys, no insignificant whitespace).
func jsonValue(m map[string]any) (string, bool) {
	if m == nil {
		return "", false
	}
	return canonicalJSON(m), true
}
