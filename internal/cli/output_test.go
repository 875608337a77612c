package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this is a long string", 10, "this is..."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncateString(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestPrintStructured(t *testing.T) {
	v := map[string]string{"name": "platform-core"}

	var buf bytes.Buffer
	if err := printStructured(&buf, "json", v); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), `"name": "platform-core"`) {
		t.Errorf("unexpected json output: %s", buf.String())
	}

	buf.Reset()
	if err := printStructured(&buf, "yaml", v); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "name: platform-core") {
		t.Errorf("unexpected yaml output: %s", buf.String())
	}

	if err := printStructured(&buf, "xml", v); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	err := printTable(&buf, []string{"NAME", "TAG"}, [][]string{{"AWS", "aws"}})
	if err != nil {
		t.Fatalf("printTable: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "aws") {
		t.Errorf("table output missing content:\n%s", out)
	}
}
