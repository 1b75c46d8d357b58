// Package pkg provides the libraries behind mermaidmacro diagram macros.
//
// # Overview
//
// A document-processing host finds macro blocks such as
//
//	[mermaid, theme=dark, format=svg]
//	graph TD; A-->B;
//
// and hands each body to the plugin registered for the tag. The pkg
// directory is organized into these areas:
//
//  1. [macro] - The plugin contract, attributes, host version ranges and a registry
//  2. [render] - External process execution, temporary files and rsvg conversion
//  3. [render/mermaid] - The mermaid plugin, driving mermaid.cli (mmdc)
//  4. [render/graphviz] - An in-process Graphviz plugin for DOT markup
//  5. [errors] - Validation and operation errors hosts branch on
//  6. [observability] - Hooks for render and subprocess metrics
//
// # Quick Start
//
//	r := mermaid.New(mermaid.Config{})
//	if err := r.Validate(ctx); err != nil {
//	    return err // mmdc is not installed
//	}
//	art, err := r.Render(ctx, "graph TD; A-->B;", macro.Attributes{"format": "svg"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("diagram."+art.Extension, art.Data, 0o644)
//
// [macro]: github.com/matzehuels/mermaidmacro/pkg/macro
// [render]: github.com/matzehuels/mermaidmacro/pkg/render
// [render/mermaid]: github.com/matzehuels/mermaidmacro/pkg/render/mermaid
// [render/graphviz]: github.com/matzehuels/mermaidmacro/pkg/render/graphviz
// [errors]: github.com/matzehuels/mermaidmacro/pkg/errors
// [observability]: github.com/matzehuels/mermaidmacro/pkg/observability
package pkg
