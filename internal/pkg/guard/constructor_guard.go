// Package guard detects value objects, entities and command objects that were
// built as zero values instead of through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose invariants are established by a
// constructor. Its zero value reports "not constructed".
//
// Example usage:
//
//	var ErrItemNotConstructed = errors.New("Item must be created via NewItem")
//
//	type Item struct {
//	    productID string
//	    quantity  int
//	    guard     guard.ConstructorGuard
//	}
//
//	func (i Item) Validate() error {
//	    return i.guard.Validate(ErrItemNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guarded object was not built through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
