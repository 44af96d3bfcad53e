// Package storage defines the entity types and repository contracts for the
// Aria platform.
//
// Each repository wraps one entity family's named parameterized statements.
// Repositories never perform business logic or cross-entity validation; that
// belongs to the endpoint handlers. The postgres subpackage provides the SQL
// implementations.
package storage
