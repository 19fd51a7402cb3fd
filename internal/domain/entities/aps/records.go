// Package aps defines the typed records returned by the Autodesk Platform
// Services data-management and model-derivative endpoints. Every attribute the
// remote API may omit is modeled as an optional read with a defined fallback.
package aps

import "time"

// Resource types appearing in data-management listings.
const (
	TypeHubs     = "hubs"
	TypeProjects = "projects"
	TypeFolders  = "folders"
	TypeItems    = "items"
	TypeVersions = "versions"
)

// ResourceList is the JSON:API envelope shared by every listing endpoint
// (hubs, projects, topFolders, folder contents, item versions).
type ResourceList struct {
	Data []Resource `json:"data"`
}

// Resource is one entry in a listing. The ID of a version resource is the
// opaque content URN used by the model-derivative service.
type Resource struct {
	Type       string              `json:"type"`
	ID         string              `json:"id"`
	Attributes *ResourceAttributes `json:"attributes,omitempty"`
}

// ResourceAttributes carries the attribute fields hubview reads. All of them
// may be absent on any given record.
type ResourceAttributes struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	CreateTime  string `json:"createTime,omitempty"`
}

// Name returns the record's name attribute, reporting whether it was present.
func (r Resource) Name() (string, bool) {
	if r.Attributes == nil || r.Attributes.Name == "" {
		return "", false
	}
	return r.Attributes.Name, true
}

// DisplayName returns the record's displayName attribute, reporting whether
// it was present.
func (r Resource) DisplayName() (string, bool) {
	if r.Attributes == nil || r.Attributes.DisplayName == "" {
		return "", false
	}
	return r.Attributes.DisplayName, true
}

// CreateTime parses the record's createTime attribute. The zero time and
// false are returned when the attribute is absent or unparseable.
func (r Resource) CreateTime() (time.Time, bool) {
	if r.Attributes == nil || r.Attributes.CreateTime == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, r.Attributes.CreateTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
