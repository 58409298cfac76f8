// Package gormstore implements the storage ports on Postgres via gorm.
// Error translation is enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey, which the user store maps to the domain error.
package gormstore
