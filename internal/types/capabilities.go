package types

type Role string

const (
	RoleX      Role = "x"
	RoleY      Role = "y"
	RoleZ      Role = "z"
	RoleColor  Role = "color"
	RoleSize   Role = "size"
	RoleFacet  Role = "facet"
	RoleFacetV Role = "facetV"
	RoleSort   Role = "sort"
	RoleUID    Role = "uid"
)

var AllRoles = []Role{RoleX, RoleY, RoleZ, RoleColor, RoleSize, RoleFacet, RoleFacetV, RoleSort, RoleUID}

// RoleCapability declares how a chart uses a data role. AllowNone marks the
// role optional; ExcludeCategoric restricts it to quantitative columns.
type RoleCapability struct {
	Role             Role   `json:"role"`
	AllowNone        bool   `json:"allowNone,omitempty"`
	ExcludeCategoric bool   `json:"excludeCategoric,omitempty"`
	Binnable         bool   `json:"binnable,omitempty"`
	AxisSelection    string `json:"axisSelection,omitempty"`
}

type SpecCapabilities struct {
	Roles           []RoleCapability `json:"roles"`
	CountsAreSummed bool             `json:"countsAreSummed,omitempty"`
}
