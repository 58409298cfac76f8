// Package inmemory provides map-backed implementations of the storage
// ports. They back the test suites and the zero-config "memory" store
// mode; semantics (uniqueness, ordering, miss errors) match the gorm
// store exactly.
package inmemory
