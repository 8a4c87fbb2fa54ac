package secrets

import (
	"context"
	"errors"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/awesomefonts/foundry/internal/serviceerr"
)

// GCP reads secrets from Google Cloud Secret Manager.
type GCP struct {
	client    *secretmanager.Client
	projectID string
}

// NewGCP creates a Secret Manager backed provider. When credentialsFile is
// empty, ambient credentials are used (the in-cloud case); otherwise the
// given service account key file is loaded.
func NewGCP(ctx context.Context, projectID, credentialsFile string) (*GCP, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating secret manager client: %w", err)
	}

	return &GCP{client: client, projectID: projectID}, nil
}

func (g *GCP) Get(ctx context.Context, name string, version int) (string, error) {
	resp, err := g.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/%d", g.projectID, name, version),
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", errors.Join(err, serviceerr.ErrNotFound)
		}

		return "", fmt.Errorf("accessing secret version: %w", err)
	}

	return string(resp.GetPayload().GetData()), nil
}

func (g *GCP) Close() error {
	return g.client.Close()
}
