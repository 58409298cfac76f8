// Package ports defines the interfaces the application core depends
// on. Adapters (gorm store, in-memory store, JWT issuer, bcrypt
// hasher) implement these; the services in internal/app consume them
// and know nothing about the implementations behind them.
package ports
