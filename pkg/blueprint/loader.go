package blueprint

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/angryss/idpctl/pkg/catalog"
	"github.com/angryss/idpctl/pkg/errors"
	"github.com/angryss/idpctl/pkg/form"
)

// File is the on-disk YAML representation of a blueprint draft, used for
// non-interactive create and update. Providers and resource types are
// referenced by tag and display name; resolution to identifiers happens at
// load time against the live catalogs.
type File struct {
	Name           string         `yaml:"name"`
	Description    string         `yaml:"description,omitempty"`
	CloudProviders []string       `yaml:"cloud_providers"`
	Resources      []FileResource `yaml:"resources,omitempty"`
}

// FileResource is one resource entry in a blueprint file.
type FileResource struct {
	Name          string                 `yaml:"name"`
	Type          string                 `yaml:"type"`
	CloudProvider string                 `yaml:"cloud_provider"`
	Configuration map[string]interface{} `yaml:"configuration,omitempty"`
}

// LoadFile reads and parses a blueprint draft file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ParseError(path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.ParseError(path, err)
	}
	if f.Name == "" {
		return nil, errors.ValidationError("blueprint file is invalid", []string{"name is required"})
	}
	if len(f.CloudProviders) == 0 {
		return nil, errors.ValidationError("blueprint file is invalid", []string{"at least one cloud provider is required"})
	}
	return &f, nil
}

// Resolve translates the file's provider tags and resource type names into
// a Blueprint addressed by identifiers. Unknown tags or type names fail
// with NOT_FOUND rather than being skipped; silently dropping an entry
// would corrupt the submitted payload.
func (f *File) Resolve(resolver *catalog.IdentityResolver, types []catalog.ResourceType) (*Blueprint, error) {
	bp := &Blueprint{
		Name:        f.Name,
		Description: f.Description,
	}

	for _, tag := range f.CloudProviders {
		id, err := resolver.ResolveID(tag)
		if err != nil {
			return nil, err
		}
		bp.SupportedCloudProviderIDs = append(bp.SupportedCloudProviderIDs, id)
	}

	typeIDs := make(map[string]uuid.UUID, len(types))
	for _, rt := range types {
		typeIDs[strings.ToLower(rt.DisplayName)] = rt.ID
	}

	for _, fr := range f.Resources {
		typeID, ok := typeIDs[strings.ToLower(fr.Type)]
		if !ok {
			return nil, errors.NotFoundError("resource type", fr.Type)
		}
		providerID, err := resolver.ResolveID(fr.CloudProvider)
		if err != nil {
			return nil, err
		}
		if !bp.SupportsProvider(providerID) {
			return nil, errors.ValidationError("blueprint file is invalid", []string{
				fmt.Sprintf("resource %s uses cloud provider %q outside the declared set", fr.Name, fr.CloudProvider),
			})
		}

		bp.Resources = append(bp.Resources, Resource{
			Name:            fr.Name,
			ResourceTypeID:  typeID,
			CloudProviderID: providerID,
			Configuration:   form.Configuration(fr.Configuration),
		})
	}

	return bp, nil
}
