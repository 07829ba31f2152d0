// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import "fmt"

// TransformError wraps a transformer failure with the index of the unit
// being transformed. Unwrap returns the transformer's error unchanged.
type TransformError struct {
	Index int
	Err   error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transforming unit %d: %v", e.Index, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// PersistError reports a failure to write the output document.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
