// Package domain holds the task-management entities and the pure rules
// that belong to them: task visibility, deletability, ownership, and
// the read-time status derivation. Nothing in this package touches
// storage, HTTP, or tokens; those live behind ports.
package domain
