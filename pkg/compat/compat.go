// Package compat decides whether a blueprint's declared resource set
// satisfies the resource requirements implied by a stack's type. The check
// is advisory on the client: it drives which blueprints are offered as
// creation or migration targets, while final enforcement stays with the
// backend.
package compat

import (
	"strings"

	"github.com/google/uuid"

	"github.com/angryss/idpctl/pkg/blueprint"
	"github.com/angryss/idpctl/pkg/catalog"
)

// Engine matches blueprints against stack-type requirement sets using the
// resource-type catalog to resolve display names.
type Engine struct {
	typeNames map[uuid.UUID]string
}

// NewEngine creates a compatibility engine over the resource-type catalog.
func NewEngine(types []catalog.ResourceType) *Engine {
	names := make(map[uuid.UUID]string, len(types))
	for _, rt := range types {
		names[rt.ID] = rt.DisplayName
	}
	return &Engine{typeNames: names}
}

// IsCompatible reports whether the blueprint satisfies every required
// resource-type name: each requirement must be matched by at least one
// blueprint resource whose resource type's display name is equal,
// case-insensitively. An empty requirement set is trivially satisfied,
// covering infrastructure-only stack types with no resource dependency.
func (e *Engine) IsCompatible(bp *blueprint.Blueprint, requiredTypeNames []string) bool {
	for _, required := range requiredTypeNames {
		if !e.hasResourceOfType(bp, required) {
			return false
		}
	}
	return true
}

// CompatibleTargets filters blueprints to those compatible with the
// requirement set, preserving the listing order: no implicit ranking is
// imposed among compatible blueprints.
func (e *Engine) CompatibleTargets(blueprints []blueprint.Blueprint, requiredTypeNames []string) []blueprint.Blueprint {
	targets := make([]blueprint.Blueprint, 0, len(blueprints))
	for _, bp := range blueprints {
		b := bp
		if e.IsCompatible(&b, requiredTypeNames) {
			targets = append(targets, bp)
		}
	}
	return targets
}

func (e *Engine) hasResourceOfType(bp *blueprint.Blueprint, requiredTypeName string) bool {
	for _, r := range bp.Resources {
		if nameMatches(e.typeNames[r.ResourceTypeID], requiredTypeName) {
			return true
		}
	}
	return false
}

// nameMatches is the single point implementing the match semantics: exact
// display-name equality, case-insensitive. This mirrors the backend
// contract; if the backend relaxes to substring matching, only this
// function changes.
func nameMatches(typeName, required string) bool {
	return typeName != "" && strings.EqualFold(typeName, required)
}
