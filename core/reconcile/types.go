package reconcile

import (
	"fmt"
	"strings"
)

// QueueType identifies the queue variant.
type QueueType string

const (
	// QueueTypeStandard is an at-least-once, unordered queue.
	QueueTypeStandard QueueType = "standard"

	// QueueTypeFifo is an exactly-once, ordered queue. FIFO queue names
	// must carry the ".fifo" suffix, and only FIFO queues support
	// content-based deduplication.
	QueueTypeFifo QueueType = "fifo"
)

// FifoSuffix is the name suffix AWS requires for FIFO queues.
const FifoSuffix = ".fifo"

// DesiredSpec declares the desired state of a single queue.
//
// Attribute fields are pointers: a nil field means "not managed by the
// caller" and is never written, while an explicit zero value is a real
// desired value and will be enforced. This is what makes repeated applies
// safe: only attributes the caller actually set can trigger a write.
type DesiredSpec struct {
	// Name is the queue name without the FIFO suffix.
	Name string `json:"name"`

	// Type selects the queue variant. Empty defaults to standard.
	Type QueueType `json:"type,omitempty"`

	// VisibilityTimeout is the default visibility timeout in seconds.
	VisibilityTimeout *int `json:"visibility_timeout,omitempty"`

	// MessageRetentionPeriod is the retention period in seconds.
	MessageRetentionPeriod *int `json:"message_retention_period,omitempty"`

	// MaximumMessageSize is the maximum message size in bytes.
	MaximumMessageSize *int `json:"maximum_message_size,omitempty"`

	// DeliveryDelay is the delivery delay in seconds.
	DeliveryDelay *int `json:"delivery_delay,omitempty"`

	// ReceiveMessageWaitTime is the long-poll wait time in seconds.
	ReceiveMessageWaitTime *int `json:"receive_message_wait_time,omitempty"`

	// Policy is the access policy document to attach to the queue.
	// It is passed through opaquely; only semantic JSON equality matters.
	Policy map[string]any `json:"policy,omitempty"`

	// RedrivePolicy is the dead-letter routing document.
	RedrivePolicy map[string]any `json:"redrive_policy,omitempty"`

	// ContentBasedDeduplication toggles deduplication on FIFO queues.
	// Setting it on a standard queue is a configuration error.
	ContentBasedDeduplication *bool `json:"content_based_deduplication,omitempty"`
}

// EffectiveType returns the queue type, defaulting to standard.
func (s *DesiredSpec) EffectiveType() QueueType {
	if s.Type == "" {
		return QueueTypeStandard
	}
	return s.Type
}

// ResolvedName returns the remote queue name for this spec. FIFO queues get
// the ".fifo" suffix appended exactly once; a caller-supplied name that
// already carries it is left alone.
func (s *DesiredSpec) ResolvedName() string {
	name := s.Name
	if s.EffectiveType() == QueueTypeFifo && !strings.HasSuffix(name, FifoSuffix) {
		name += FifoSuffix
	}
	return name
}

// Validate checks the spec for configuration errors. It must pass before
// any remote call is made so that invalid specs have zero side effects.
func (s *DesiredSpec) Validate() error {
	if s.Name == "" {
		return &ConfigurationError{Field: "name", Reason: "must not be empty"}
	}
	switch s.EffectiveType() {
	case QueueTypeStandard, QueueTypeFifo:
	default:
		return &ConfigurationError{Field: "type", Reason: fmt.Sprintf("unknown queue type %q", s.Type)}
	}
	if s.ContentBasedDeduplication != nil && s.EffectiveType() != QueueTypeFifo {
		return &ConfigurationError{Field: "content_based_deduplication", Reason: "only valid for fifo queues"}
	}
	return nil
}

// ConfigurationError reports an invalid desired spec. It is always raised
// before the first remote call.
type ConfigurationError struct {
	// Field is the spec field that failed validation.
	Field string

	// Reason describes why the field is invalid.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid spec: %s: %s", e.Field, e.Reason)
}

// ObservedAttributes holds the queue attribute values read back from the
// remote API after a successful non-dry-run apply.
type ObservedAttributes struct {
	// QueueARN is the Amazon resource name of the queue.
	QueueARN string `json:"queue_arn"`

	// VisibilityTimeout is the observed visibility timeout in seconds.
	VisibilityTimeout int `json:"visibility_timeout"`

	// MessageRetentionPeriod is the observed retention period in seconds.
	MessageRetentionPeriod int `json:"message_retention_period"`

	// MaximumMessageSize is the observed maximum message size in bytes.
	MaximumMessageSize int `json:"maximum_message_size"`

	// DeliveryDelay is the observed delivery delay in seconds.
	DeliveryDelay int `json:"delivery_delay"`

	// ReceiveMessageWaitTime is the observed long-poll wait time in seconds.
	ReceiveMessageWaitTime int `json:"receive_message_wait_time"`

	// Policy is the raw access policy document, if any.
	Policy string `json:"policy,omitempty"`

	// RedrivePolicy is the raw dead-letter routing document, if any.
	RedrivePolicy string `json:"redrive_policy,omitempty"`

	// ContentBasedDeduplication is only populated for FIFO queues.
	ContentBasedDeduplication *bool `json:"content_based_deduplication,omitempty"`
}

// Result is the outcome of a single reconciliation pass. It is assembled
// once per invocation and not mutated afterwards.
type Result struct {
	// Name is the resolved remote queue name (including any FIFO suffix).
	Name string `json:"name"`

	// Type is the queue variant that was reconciled.
	Type QueueType `json:"type"`

	// QueueURL is the resolved queue handle. Empty when the queue does not
	// exist and was not created (dry-run create, or delete of a missing queue).
	QueueURL string `json:"queue_url,omitempty"`

	// Changed reports whether any remote mutation was made (or, in dry-run,
	// would have been made).
	Changed bool `json:"changed"`

	// DryRun reports whether mutations were suppressed.
	DryRun bool `json:"dry_run"`

	// Attributes holds the final observed values. Only populated on the
	// apply path when not in dry-run mode.
	Attributes *ObservedAttributes `json:"attributes,omitempty"`
}
