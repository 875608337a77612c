package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/angryss/idpctl/pkg/blueprint"
	"github.com/angryss/idpctl/pkg/cascade"
)

func TestPromptConfirmer(t *testing.T) {
	prompt := blueprint.ConfirmPrompt{
		Title: "Removing cloud providers will delete dependent resources",
		Affected: []cascade.AffectedResource{
			{Name: "orders-db", CloudProviderDisplayName: "AWS"},
		},
	}

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes long", "yes\n", true},
		{"yes uppercase", "Y\n", true},
		{"no", "n\n", false},
		{"empty defaults to no", "\n", false},
		{"garbage defaults to no", "maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &promptConfirmer{in: strings.NewReader(tt.input), out: &out}

			got, err := c.Confirm(context.Background(), prompt)
			if err != nil {
				t.Fatalf("Confirm returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "orders-db (AWS)") {
				t.Errorf("prompt should itemize affected resources, got:\n%s", out.String())
			}
		})
	}
}

func TestAutoApproveConfirmer(t *testing.T) {
	got, err := autoApproveConfirmer{}.Confirm(context.Background(), blueprint.ConfirmPrompt{})
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if !got {
		t.Error("auto-approve should always confirm")
	}
}
