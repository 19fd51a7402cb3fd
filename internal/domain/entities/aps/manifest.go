package aps

// StatusSuccess is the manifest status of a fully translated design.
const StatusSuccess = "success"

// Derivative output types the embedded viewer can load.
const (
	OutputTypeSVF  = "svf"
	OutputTypeSVF2 = "svf2"
)

// Derivative node types and roles hubview navigates.
const (
	NodeTypeGeometry = "geometry"
	NodeTypeView     = "view"

	Role3D = "3d"
	Role2D = "2d"
)

// Manifest is the translation-status document for one design URN.
type Manifest struct {
	Type        string       `json:"type"`
	URN         string       `json:"urn"`
	Status      string       `json:"status"`
	Progress    string       `json:"progress,omitempty"`
	Derivatives []Derivative `json:"derivatives"`
}

// IsComplete reports whether the translation finished successfully. A nil
// manifest (design never submitted for translation) is not complete.
func (m *Manifest) IsComplete() bool {
	return m != nil && m.Status == StatusSuccess
}

// Derivative is one translated output format of the source design.
type Derivative struct {
	Name       string           `json:"name,omitempty"`
	OutputType string           `json:"outputType"`
	Status     string           `json:"status,omitempty"`
	Children   []DerivativeNode `json:"children,omitempty"`
}

// DerivativeNode is a node in a derivative's content tree. Geometry nodes
// represent renderable scenes (3d) or sheets (2d); their view children carry
// the navigable view GUIDs.
type DerivativeNode struct {
	Type     string           `json:"type"`
	Role     string           `json:"role,omitempty"`
	Name     string           `json:"name,omitempty"`
	GUID     string           `json:"guid,omitempty"`
	Children []DerivativeNode `json:"children,omitempty"`
}

// MetadataEnvelope wraps the model-derivative metadata listing for a URN.
type MetadataEnvelope struct {
	Data MetadataData `json:"data"`
}

// MetadataData is the body of a metadata listing.
type MetadataData struct {
	Type     string         `json:"type"`
	Metadata []MetadataView `json:"metadata"`
}

// MetadataView is one viewable listed by the metadata endpoint.
type MetadataView struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
	GUID string `json:"guid"`
}
