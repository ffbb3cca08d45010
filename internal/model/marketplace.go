package model

import "time"

// ModuleInstall records whether an optional dashboard module is enabled.
// Reads go through the redis entitlement cache; installs and uninstalls
// write the row and invalidate the cache entry.
type ModuleInstall struct {
	ID          int64     `json:"id"`
	ModuleID    string    `json:"module_id"` // e.g. evm, capacity, raid, forge, flux, billing
	Installed   bool      `json:"installed"`
	InstalledBy string    `json:"installed_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}
