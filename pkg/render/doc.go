// Package render holds the invocation logic shared by diagram plugins that
// delegate to external command-line renderers.
//
// # Overview
//
// A plugin describes its renderer as a [Tool] (executable name plus the
// distribution that ships it). The tool validates itself against PATH and
// builds [Command] values, which [Run] executes synchronously with standard
// output and standard error captured:
//
//	tool := render.Tool{Executable: "mmdc", Package: "mermaid.cli"}
//	if err := tool.Validate("mermaid"); err != nil {
//	    return err // *errors.ValidationError
//	}
//	out, err := render.Run(ctx, tool.Command("-i", in, "-o", out))
//
// A nonzero exit yields an [*ExitError] carrying the captured standard error.
// Plugins translate it into an *errors.OperationError with their own name and
// file paths.
//
// # Temporary Files
//
// Renderers that only accept file paths get scoped temporary files from
// [WriteTemp] and [ReserveTemp]. Each returns a release function that
// removes the file; callers defer it so the file disappears on every exit
// path.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG to other formats using rsvg-convert (from
// librsvg), for plugins whose native renderer only produces SVG.
package render
