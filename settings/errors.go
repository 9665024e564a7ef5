package settings

import (
	"errors"
	"fmt"
)

// Errors returned by settings tree and entry operations. Structural
// errors (arity, collision, unsupported operation, invalid key) indicate
// misuse of the API by the host application and surface immediately;
// data-path failures never raise them.
var (
	// ErrArityMismatch indicates a dynamic-part count that does not match
	// the key template.
	ErrArityMismatch = errors.New("dynamic key part count mismatch")

	// ErrKeyCollision indicates a registration whose local key already
	// names a different sibling.
	ErrKeyCollision = errors.New("key already registered")

	// ErrUnsupportedOperation indicates an operation invoked on a node
	// not configured to support it.
	ErrUnsupportedOperation = errors.New("operation not supported by this node")

	// ErrInvalidKey indicates a malformed local key.
	ErrInvalidKey = errors.New("invalid key")

	// ErrAlreadyRegistered indicates a duplicate entry registration in a
	// Registry.
	ErrAlreadyRegistered = errors.New("entry already registered")
)

// ArityError reports a mismatch between a key template's placeholders and
// the supplied dynamic parts.
type ArityError struct {
	// Template is the key template being resolved.
	Template string
	// Want is the number of placeholders in the template.
	Want int
	// Got is the number of dynamic parts supplied.
	Got int
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	return fmt.Sprintf("key %q requires %d dynamic parts, got %d", e.Template, e.Want, e.Got)
}

// Is implements error matching against ErrArityMismatch.
func (e *ArityError) Is(target error) bool {
	return target == ErrArityMismatch
}

// KeyCollisionError reports a registration conflict under a tree node.
type KeyCollisionError struct {
	// ParentKey is the complete key of the node registration was
	// attempted on.
	ParentKey string
	// Key is the conflicting local key.
	Key string
	// Existing describes the sibling already holding the key.
	Existing string
}

// Error implements the error interface.
func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("key %q already names %s under %q", e.Key, e.Existing, e.ParentKey)
}

// Is implements error matching against ErrKeyCollision.
func (e *KeyCollisionError) Is(target error) bool {
	return target == ErrKeyCollision
}

// UnsupportedOperationError reports an operation invoked on a node not
// configured to support it.
type UnsupportedOperationError struct {
	// NodeKey is the complete key of the node.
	NodeKey string
	// Operation names the rejected operation.
	Operation string
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("node %q does not support %s", e.NodeKey, e.Operation)
}

// Is implements error matching against ErrUnsupportedOperation.
func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

// InvalidKeyError reports a malformed local key.
type InvalidKeyError struct {
	// Key is the rejected key.
	Key string
	// Reason describes why it was rejected.
	Reason string
}

// Error implements the error interface.
func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key %q: %s", e.Key, e.Reason)
}

// Is implements error matching against ErrInvalidKey.
func (e *InvalidKeyError) Is(target error) bool {
	return target == ErrInvalidKey
}
