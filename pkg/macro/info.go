package macro

import (
	"github.com/hashicorp/go-version"

	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
)

// Info describes a plugin to its host.
type Info struct {
	// TagName is the macro tag the plugin handles, e.g. "mermaid".
	TagName string

	// EntrypointName identifies the plugin in error messages.
	EntrypointName string

	// Description is a one-line summary for listings.
	Description string

	// MinVersion is the oldest supported host version (inclusive).
	// Empty means no lower bound.
	MinVersion string

	// MaxVersion is the first unsupported host version (exclusive).
	// Empty means no upper bound.
	MaxVersion string
}

// Supports reports whether hostVersion lies in [MinVersion, MaxVersion).
// Versions are compared as semantic versions, so "2.10.0" is newer than
// "2.9.0". Malformed versions return an INVALID_VERSION error.
func (i Info) Supports(hostVersion string) (bool, error) {
	host, err := version.NewVersion(hostVersion)
	if err != nil {
		return false, errs.Wrap(errs.ErrCodeInvalidVersion, err, "invalid host version %q", hostVersion)
	}

	if i.MinVersion != "" {
		minV, err := version.NewVersion(i.MinVersion)
		if err != nil {
			return false, errs.Wrap(errs.ErrCodeInvalidVersion, err, "%s: invalid minimum version %q", i.EntrypointName, i.MinVersion)
		}
		if host.LessThan(minV) {
			return false, nil
		}
	}

	if i.MaxVersion != "" {
		maxV, err := version.NewVersion(i.MaxVersion)
		if err != nil {
			return false, errs.Wrap(errs.ErrCodeInvalidVersion, err, "%s: invalid maximum version %q", i.EntrypointName, i.MaxVersion)
		}
		if !host.LessThan(maxV) {
			return false, nil
		}
	}

	return true, nil
}

// CheckHost is like Supports but returns an INCOMPATIBLE_HOST error
// instead of false.
func (i Info) CheckHost(hostVersion string) error {
	ok, err := i.Supports(hostVersion)
	if err != nil {
		return err
	}
	if !ok {
		return errs.New(errs.ErrCodeIncompatible, "%s supports host versions %s, got %s",
			i.EntrypointName, i.VersionRange(), hostVersion)
	}
	return nil
}

// VersionRange formats the supported host versions, e.g. ">= 2.0.0, < 3.0.0".
func (i Info) VersionRange() string {
	switch {
	case i.MinVersion != "" && i.MaxVersion != "":
		return ">= " + i.MinVersion + ", < " + i.MaxVersion
	case i.MinVersion != "":
		return ">= " + i.MinVersion
	case i.MaxVersion != "":
		return "< " + i.MaxVersion
	default:
		return "any"
	}
}
