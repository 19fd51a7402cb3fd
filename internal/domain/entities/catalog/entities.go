// Package catalog defines the flattened viewable-file catalog and the view
// entries extracted from translation manifests.
package catalog

import (
	"sort"
	"strings"
)

// supportedExtensions is the fixed allow-list of CAD file extensions that are
// considered viewable. Matching is case-insensitive on the display name.
var supportedExtensions = []string{
	".rvt",
	".dwg",
	".ifc",
	".step",
	".stp",
	".iam",
	".ipt",
}

// IsSupportedCADFile reports whether a display name carries one of the
// allow-listed CAD extensions.
func IsSupportedCADFile(displayName string) bool {
	lower := strings.ToLower(displayName)
	for _, ext := range supportedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Entry is one viewable file in the catalog: the URN of its latest version.
type Entry struct {
	URN string `json:"urn"`
}

// Catalog maps display name -> viewable entry. The display name is the key:
// when two items in different folders share a display name, the later-merged
// one wins. A Catalog is always non-nil; callers never see an absent catalog,
// only an empty one.
type Catalog map[string]Entry

// New returns an empty, non-nil catalog.
func New() Catalog {
	return make(Catalog)
}

// Merge folds other into c by key union. Keys already present are
// overwritten, so later merges win on collision.
func (c Catalog) Merge(other Catalog) {
	for name, entry := range other {
		c[name] = entry
	}
}

// Names returns the catalog's display names sorted lexicographically for
// stable option lists.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ManifestView is one navigable view extracted from a translation manifest.
type ManifestView struct {
	Name string `json:"name"`
	GUID string `json:"guid"`
	Role string `json:"role"`
}

// Label returns the display label with the role prefix ("[3D] " or "[2D] ").
func (v ManifestView) Label() string {
	if v.Role == "2d" {
		return "[2D] " + v.Name
	}
	return "[3D] " + v.Name
}

// ViewOption is the label/guid pair consumed by the view selection widget.
type ViewOption struct {
	Label string `json:"label"`
	GUID  string `json:"guid"`
}
