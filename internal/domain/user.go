package domain

// User is a directory record in the shared schema. A user belongs to exactly
// one tenant for its lifetime; Password holds a bcrypt hash, never plaintext.
type User struct {
	AuditRecord
	TenantID int64   `gorm:"not null" json:"tenant_id"`
	Name     string  `gorm:"type:text;not null" json:"name"`
	Password string  `gorm:"type:text;not null" json:"-"`
	Email    string  `gorm:"type:text;not null" json:"email"`
	Active   bool    `gorm:"not null;default:false" json:"active"`
	Tenant   *Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

func (User) TableName() string {
	return "user"
}
