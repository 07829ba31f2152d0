// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stress

import "context"

// Passthrough returns every unit unchanged. It backs the "none" backend,
// which converts the document without marking stress.
type Passthrough struct{}

// Transform returns text.
func (Passthrough) Transform(_ context.Context, text string) (string, error) {
	return text, nil
}
