package models

import "time"

// Counter backs the numbering service. One row per (tenant, name); the
// name encodes the sequence purpose, e.g. "order", "kot" or
// "bill:1:BILL". Rows are incremented under a FOR UPDATE lock.
type Counter struct {
	TenantCode string    `gorm:"column:tenant_code;primaryKey"`
	Name       string    `gorm:"column:name;primaryKey"`
	LastValue  int64     `gorm:"column:last_value;not null;default:0"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
