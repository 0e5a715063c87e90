package core

// Op is the kind of mutation a Change carries.
type Op int

const (
	OpInsert Op = iota
	OpUpdate
	OpDelete
)

// String returns the operation name for logging.
func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is one entity mutation inside an atomic change set. For updates
// and deletes the entity's Version field is the expected version: the store
// rejects the whole set with a concurrency conflict when any expectation
// does not hold.
type Change struct {
	Op     Op
	Entity Entity
}

// Insert stages a new entity; its Version must be 0.
func Insert(entity Entity) Change {
	return Change{Op: OpInsert, Entity: entity}
}

// Update stages a new value for an existing entity, expecting the version
// the entity was read at.
func Update(entity Entity) Change {
	return Change{Op: OpUpdate, Entity: entity}
}

// Delete stages removal of an entity, expecting the version it was read at.
// Referential actions (cascade, restrict, nullify) are applied by the store.
func Delete(entity Entity) Change {
	return Change{Op: OpDelete, Entity: entity}
}
