package models

import "time"

// Customer links sales to a person. The walk-in customer is a fixed row
// that can never carry a due; IGSTStatus marks inter-state buyers whose
// bills finalize with IGST instead of CGST+SGST.
type Customer struct {
	ID         string    `gorm:"column:id;primaryKey"`
	TenantCode string    `gorm:"column:tenant_code;not null;index"`
	Name       string    `gorm:"column:name;not null"`
	Contact    string    `gorm:"column:contact;index"`
	IGSTStatus bool      `gorm:"column:igst_status;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
