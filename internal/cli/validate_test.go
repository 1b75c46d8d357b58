package cli

import (
	"strings"
	"testing"

	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
)

func TestValidateAllReady(t *testing.T) {
	env := newTestEnv(t)
	env.installFake()

	if err := env.run("validate"); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	for _, want := range []string{"mermaid ready", "graphviz ready"} {
		if !strings.Contains(env.stdout.String(), want) {
			t.Errorf("validate output should contain %q, got:\n%s", want, env.stdout.String())
		}
	}
}

func TestValidateMissingRenderer(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("[mermaid]\nexecutable = \"mmdc-not-installed\"\n")

	err := env.run("validate")
	if !errs.Is(err, errs.ErrCodeValidation) {
		t.Fatalf("validate error = %v, want VALIDATION_FAILED", err)
	}

	out := env.stdout.String()
	if !strings.Contains(out, "mermaid.cli") {
		t.Errorf("validate output should name the missing package, got:\n%s", out)
	}
	if !strings.Contains(out, "graphviz ready") {
		t.Errorf("other plugins should still be checked, got:\n%s", out)
	}
}

func TestValidateHostVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"2.0.0", false},
		{"2.9.3", false},
		{"1.9.0", true},
		{"3.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			env := newTestEnv(t)
			env.installFake()

			err := env.run("validate", "--tag", "mermaid", "--host-version", tt.version)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate --host-version %s error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(env.stdout.String(), ">= 2.0.0, < 3.0.0") {
				t.Errorf("output should show the supported range, got:\n%s", env.stdout.String())
			}
		})
	}
}

func TestValidateUnknownTag(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("validate", "--tag", "plantuml"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("validate error = %v, want NOT_FOUND", err)
	}
}
