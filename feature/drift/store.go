package drift

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"queue-manager/core/reconcile"
	"queue-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// specExtension is the object suffix for stored spec documents.
const specExtension = ".json"

// SpecStore reads and writes desired-spec documents in the object store.
// Documents are keyed by queue name: <prefix><name>.json.
type SpecStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewSpecStore creates a spec store over the given bucket and prefix.
func NewSpecStore(client storage.Client, bucket, prefix string) *SpecStore {
	return &SpecStore{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *SpecStore) objectName(name string) string {
	return s.prefix + name + specExtension
}

// List returns the names of all stored specs, sorted.
func (s *SpecStore) List(ctx context.Context) ([]string, error) {
	var names []string

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list specs: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, specExtension) {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, s.prefix), specExtension)
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// Get loads and parses one spec document.
func (s *SpecStore) Get(ctx context.Context, name string) (*reconcile.DesiredSpec, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectName(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spec %q: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec %q: %w", name, err)
	}

	var spec reconcile.DesiredSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse spec %q: %w", name, err)
	}
	return &spec, nil
}

// Save validates and stores a spec document under its queue name.
func (s *SpecStore) Save(ctx context.Context, spec *reconcile.DesiredSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize spec %q: %w", spec.Name, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.objectName(spec.Name),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to store spec %q: %w", spec.Name, err)
	}
	return nil
}

// Delete removes a spec document.
func (s *SpecStore) Delete(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, s.objectName(name), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete spec %q: %w", name, err)
	}
	return nil
}
