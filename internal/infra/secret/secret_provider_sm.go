// internal/infra/secret/secret_provider_sm.go
package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

var (
	ErrSecretNotConfigured = errors.New("secret_provider: not configured")
	ErrSecretNotFound      = errors.New("secret_provider: secret not found")
)

// Accessor is the part of *secretmanager.Client used here.
type Accessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// ProviderSM reads the latest version of a Secret Manager secret as a string.
type ProviderSM struct {
	Client    Accessor
	ProjectID string
}

func NewProviderSM(client Accessor, projectID string) *ProviderSM {
	return &ProviderSM{Client: client, ProjectID: strings.TrimSpace(projectID)}
}

// Latest returns the trimmed payload of projects/{project}/secrets/{secretID}/versions/latest.
// A full resource name ("projects/...") is used as-is.
func (p *ProviderSM) Latest(ctx context.Context, secretID string) (string, error) {
	if p == nil || p.Client == nil {
		return "", ErrSecretNotConfigured
	}
	id := strings.TrimSpace(secretID)
	if id == "" {
		return "", ErrSecretNotConfigured
	}

	name := id
	if !strings.HasPrefix(id, "projects/") {
		if p.ProjectID == "" {
			return "", fmt.Errorf("%w: projectID is empty", ErrSecretNotConfigured)
		}
		name = fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.ProjectID, id)
	}

	res, err := p.Client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSecretNotFound, name, err)
	}
	if res == nil || res.Payload == nil {
		return "", ErrSecretNotFound
	}

	s := strings.TrimSpace(string(res.Payload.Data))
	if s == "" {
		return "", ErrSecretNotFound
	}
	return s, nil
}
