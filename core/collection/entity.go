// Package collection holds the in-memory entity stores behind every dashboard screen
// and the predicates deriving their visible subsets.
package collection

// Entity is a record held by a Store. Implementations are value types:
// WithID and Clone must never share mutable state with the receiver.
type Entity[T any] interface {
	EntityID() string
	// WithID returns a copy of the entity identified by id.
	WithID(id string) T
	// Clone returns a deep copy of the entity.
	Clone() T
}
