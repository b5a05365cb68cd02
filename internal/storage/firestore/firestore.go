// Package firestore is the Cloud Firestore implementation of the durable
// project backend. Documents live in one collection keyed by project id and
// are written with merge semantics.
package firestore

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
)

// Backend stores project documents in a Firestore collection.
type Backend struct {
	client     *firestore.Client
	collection string
}

// Options for connecting to Firestore.
type Options struct {
	GCPProject      string
	CredentialsPath string
	Collection      string
}

// New connects to Firestore. CredentialsPath is optional; when empty the
// ambient service account is used (the Cloud Run default).
func New(ctx context.Context, opt Options) (*Backend, error) {
	var clientOpts []option.ClientOption
	if opt.CredentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opt.CredentialsPath))
	}

	client, err := firestore.NewClient(ctx, opt.GCPProject, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	collection := opt.Collection
	if collection == "" {
		collection = "wedding_seating_projects"
	}

	return &Backend{client: client, collection: collection}, nil
}

func (b *Backend) Get(ctx context.Context, projectID string) (domain.Project, bool, error) {
	snap, err := b.client.Collection(b.collection).Doc(projectID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return domain.Project{}, false, nil
	}
	if err != nil {
		return domain.Project{}, false, fmt.Errorf("firestore get: %w", err)
	}

	p, err := docToProject(snap.Data())
	if err != nil {
		return domain.Project{}, false, fmt.Errorf("firestore decode: %w", err)
	}
	return p, true, nil
}

func (b *Backend) Set(ctx context.Context, projectID string, p domain.Project) error {
	doc, err := projectToDoc(p)
	if err != nil {
		return fmt.Errorf("firestore encode: %w", err)
	}
	if _, err := b.client.Collection(b.collection).Doc(projectID).Set(ctx, doc, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore set: %w", err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.client.Close()
}

// Firestore maps use string keys, while AssignmentMap keys seats by int. The
// JSON round-trip bridges the two representations in both directions.

func projectToDoc(p domain.Project) (map[string]interface{}, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func docToProject(doc map[string]interface{}) (domain.Project, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return domain.Project{}, err
	}
	var p domain.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}
