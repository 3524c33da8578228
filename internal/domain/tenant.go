package domain

// Tenant is a directory record in the shared schema. Schema names the physical
// schema holding the tenant's business tables; at most one active tenant has
// DefaultTenant set, enforced by provisioning.
type Tenant struct {
	AuditRecord
	Name          string `gorm:"type:text;not null" json:"name"`
	Schema        string `gorm:"type:text;not null;unique" json:"schema"`
	DefaultTenant bool   `gorm:"not null;default:false" json:"default_tenant"`
	Active        bool   `gorm:"not null;default:false" json:"active"`
}

// TableName is unqualified: sessions supply the schema via search_path.
func (Tenant) TableName() string {
	return "tenant"
}
