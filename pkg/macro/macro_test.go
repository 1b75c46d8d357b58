package macro

import (
	"context"
	"testing"

	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
)

func TestAttributesGet(t *testing.T) {
	attrs := Attributes{"theme": "dark", "empty": ""}

	tests := []struct {
		key, def, want string
	}{
		{"theme", "default", "dark"},
		{"format", "png", "png"},
		{"empty", "fallback", ""},
	}

	for _, tt := range tests {
		if got := attrs.Get(tt.key, tt.def); got != tt.want {
			t.Errorf("Get(%q, %q) = %q, want %q", tt.key, tt.def, got, tt.want)
		}
	}

	var nilAttrs Attributes
	if got := nilAttrs.Get("format", "png"); got != "png" {
		t.Errorf("nil Attributes Get() = %q, want png", got)
	}
}

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    Attributes
		wantErr bool
	}{
		{"empty", nil, Attributes{}, false},
		{"single", []string{"theme=dark"}, Attributes{"theme": "dark"}, false},
		{"value with equals", []string{"bg=a=b"}, Attributes{"bg": "a=b"}, false},
		{"later wins", []string{"format=png", "format=svg"}, Attributes{"format": "svg"}, false},
		{"empty value", []string{"theme="}, Attributes{"theme": ""}, false},
		{"missing equals", []string{"theme"}, nil, true},
		{"empty key", []string{"=dark"}, nil, true},
		{"bad key", []string{"the me=dark"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAttributes(tt.pairs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAttributes(%v) error = %v, wantErr %v", tt.pairs, err, tt.wantErr)
			}
			if err != nil {
				if !errs.Is(err, errs.ErrCodeInvalidInput) {
					t.Errorf("error code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidInput)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseAttributes(%v) = %v, want %v", tt.pairs, got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("attrs[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestInfoSupports(t *testing.T) {
	info := Info{EntrypointName: "mermaid", MinVersion: "2.0.0", MaxVersion: "3.0.0"}

	tests := []struct {
		host    string
		want    bool
		wantErr bool
	}{
		{"2.0.0", true, false},
		{"2.5.1", true, false},
		{"2.10.0", true, false},
		{"v2.3.0", true, false},
		{"1.9.9", false, false},
		{"3.0.0", false, false},
		{"3.1.0", false, false},
		{"not-a-version", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		got, err := info.Supports(tt.host)
		if (err != nil) != tt.wantErr {
			t.Errorf("Supports(%q) error = %v, wantErr %v", tt.host, err, tt.wantErr)
			continue
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidVersion) {
			t.Errorf("Supports(%q) code = %v", tt.host, errs.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("Supports(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestInfoSupportsOpenBounds(t *testing.T) {
	open := Info{EntrypointName: "graphviz"}
	if ok, err := open.Supports("0.1.0"); err != nil || !ok {
		t.Errorf("unbounded Supports() = %v, %v", ok, err)
	}

	minOnly := Info{MinVersion: "2.0.0"}
	if ok, _ := minOnly.Supports("99.0.0"); !ok {
		t.Error("min-only range should accept newer versions")
	}

	bad := Info{EntrypointName: "broken", MaxVersion: "three"}
	if _, err := bad.Supports("2.0.0"); !errs.Is(err, errs.ErrCodeInvalidVersion) {
		t.Errorf("malformed MaxVersion should fail with INVALID_VERSION, got %v", err)
	}
}

func TestInfoCheckHost(t *testing.T) {
	info := Info{EntrypointName: "mermaid", MinVersion: "2.0.0", MaxVersion: "3.0.0"}

	if err := info.CheckHost("2.1.0"); err != nil {
		t.Errorf("CheckHost(2.1.0) error: %v", err)
	}
	if err := info.CheckHost("3.0.0"); !errs.Is(err, errs.ErrCodeIncompatible) {
		t.Errorf("CheckHost(3.0.0) = %v, want INCOMPATIBLE_HOST", err)
	}
}

func TestInfoVersionRange(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{MinVersion: "2.0.0", MaxVersion: "3.0.0"}, ">= 2.0.0, < 3.0.0"},
		{Info{MinVersion: "2.0.0"}, ">= 2.0.0"},
		{Info{MaxVersion: "3.0.0"}, "< 3.0.0"},
		{Info{}, "any"},
	}
	for _, tt := range tests {
		if got := tt.info.VersionRange(); got != tt.want {
			t.Errorf("VersionRange() = %q, want %q", got, tt.want)
		}
	}
}

type stubPlugin struct{ info Info }

func (s stubPlugin) Info() Info                       { return s.info }
func (s stubPlugin) Validate(ctx context.Context) error { return nil }
func (s stubPlugin) Render(ctx context.Context, markup string, attrs Attributes) (Artifact, error) {
	return Artifact{Extension: "txt", Data: []byte(markup)}, nil
}

func TestRegistry(t *testing.T) {
	mermaid := stubPlugin{Info{TagName: "mermaid"}}
	dot := stubPlugin{Info{TagName: "graphviz"}}
	r := NewRegistry(mermaid, dot)

	tags := r.Tags()
	if len(tags) != 2 || tags[0] != "graphviz" || tags[1] != "mermaid" {
		t.Errorf("Tags() = %v, want [graphviz mermaid]", tags)
	}

	p, err := r.Get("mermaid")
	if err != nil {
		t.Fatalf("Get(mermaid) error: %v", err)
	}
	if p.Info().TagName != "mermaid" {
		t.Errorf("Get(mermaid) returned %q", p.Info().TagName)
	}

	if _, err := r.Get("plantuml"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Get(plantuml) error = %v, want NOT_FOUND", err)
	}

	plugins := r.Plugins()
	if len(plugins) != 2 || plugins[0].Info().TagName != "graphviz" {
		t.Errorf("Plugins() not ordered by tag: %v", plugins)
	}
}

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry(stubPlugin{Info{TagName: "mermaid", Description: "old"}})
	r.Register(stubPlugin{Info{TagName: "mermaid", Description: "new"}})

	p, _ := r.Get("mermaid")
	if p.Info().Description != "new" {
		t.Errorf("Register should replace plugins with the same tag")
	}
	if len(r.Tags()) != 1 {
		t.Errorf("Tags() = %v, want one entry", r.Tags())
	}
}
