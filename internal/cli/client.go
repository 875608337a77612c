package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/angryss/idpctl/pkg/api"
	"github.com/angryss/idpctl/pkg/catalog"
)

// session bundles the API client with the catalogs every command needs.
type session struct {
	client    *api.Client
	resolver  *catalog.IdentityResolver
	providers []catalog.CloudProvider
}

// newSession builds an API client from the resolved configuration and primes
// the identity resolver from the live cloud provider catalog. Every command
// goes through here, so a missing endpoint fails fast with a hint instead of
// a connection error.
func newSession(ctx context.Context) (*session, error) {
	endpoint := viper.GetString(ConfigKeyAPIEndpoint)
	if endpoint == "" {
		return nil, fmt.Errorf(
			"no API endpoint configured\n\n" +
				"Specify an endpoint using one of:\n" +
				"  --api-endpoint flag\n" +
				"  IDPCTL_API_ENDPOINT environment variable\n" +
				"  idpctl config set api-endpoint <url>",
		)
	}

	resolver := catalog.NewIdentityResolver()
	client, err := api.NewClient(endpoint, viper.GetString(ConfigKeyAPIKey), resolver)
	if err != nil {
		return nil, err
	}

	providers, err := client.ListCloudProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cloud provider catalog: %w", err)
	}
	resolver.Initialize(providers)

	return &session{client: client, resolver: resolver, providers: providers}, nil
}

// providerName resolves a provider id to its display name, falling back to
// the id itself for anything outside the catalog.
func (s *session) providerName(id uuid.UUID) string {
	for _, p := range s.providers {
		if p.ID == id {
			return p.DisplayName
		}
	}
	return id.String()
}
