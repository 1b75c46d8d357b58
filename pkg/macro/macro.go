// Package macro defines the contract between a document-processing host and
// the diagram plugins in this module.
//
// A host finds macro blocks in a document, looks up the [Plugin] registered
// for the block's tag, calls [Plugin.Validate] once, and then calls
// [Plugin.Render] for every block with the block body and its attributes.
// The plugin returns an [Artifact]: a file extension and the image bytes,
// which the host owns from then on.
//
//	p := mermaid.New(mermaid.Config{})
//	if err := p.Validate(ctx); err != nil {
//	    return err // *errors.ValidationError
//	}
//	art, err := p.Render(ctx, "graph TD; A-->B;", macro.Attributes{"theme": "dark"})
//	if err != nil {
//	    return err // *errors.OperationError, or an I/O error
//	}
//	os.WriteFile("diagram."+art.Extension, art.Data, 0o644)
//
// Finding macros in documents, caching artifacts between builds and loading
// plugins dynamically are left to the host.
package macro

import (
	"context"
	"strings"

	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
)

// Plugin renders the body of one kind of macro block into an image.
//
// Implementations keep no state between calls, so a host may call Render
// from several goroutines at once.
type Plugin interface {
	// Info describes the plugin to the host.
	Info() Info

	// Validate checks the plugin's prerequisites. Hosts call it once before
	// the first Render. It returns *errors.ValidationError on failure.
	Validate(ctx context.Context) error

	// Render converts markup into an image. attrs holds the macro block's
	// attributes; keys the plugin does not know are ignored.
	Render(ctx context.Context, markup string, attrs Attributes) (Artifact, error)
}

// Artifact is a rendered image.
type Artifact struct {
	Extension string // file extension without the dot, e.g. "png"
	Data      []byte
}

// Attributes are the key/value options attached to a macro block.
type Attributes map[string]string

// Get returns the value for key, or def when key is absent.
// A key present with an empty value is returned as-is.
func (a Attributes) Get(key, def string) string {
	if v, ok := a[key]; ok {
		return v
	}
	return def
}

// ParseAttributes converts "key=value" pairs into Attributes.
// Later pairs override earlier ones. Keys are validated with
// errors.ValidateAttributeKey; values may be empty.
func ParseAttributes(pairs []string) (Attributes, error) {
	attrs := make(Attributes, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidInput, "attribute %q must have the form key=value", pair)
		}
		key = strings.TrimSpace(key)
		if err := errs.ValidateAttributeKey(key); err != nil {
			return nil, err
		}
		attrs[key] = value
	}
	return attrs, nil
}
