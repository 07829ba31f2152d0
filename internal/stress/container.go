// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stress

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/nagolos/internal/container"
	"github.com/pdiddy/nagolos/pkg/types"
)

// Environment passed to the stress image.
const (
	EnvSymbol      = "STRESS_SYMBOL"
	EnvOnAmbiguity = "STRESS_ON_AMBIGUITY"
)

// ContainerStressifier pipes each unit through a container image that reads
// plain text on stdin and writes the stressed text on stdout. It depends on
// a container.Runtime (docker or podman) injected at construction time.
type ContainerStressifier struct {
	runtime container.Runtime
	image   string
	env     []string
	timeout time.Duration
}

// NewContainerStressifier verifies that image exists locally in rt before
// returning. A positive timeout bounds each container run.
func NewContainerStressifier(ctx context.Context, rt container.Runtime, image string, timeout time.Duration, opts Options) (*ContainerStressifier, error) {
	if image == "" {
		image = types.DefaultImage
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("stress image not available in %s: %w", rt.Name(), err)
	}

	symbol := opts.Symbol
	if symbol == "" {
		symbol = types.SymbolCombining
	}
	policy := opts.OnAmbiguity
	if policy == "" {
		policy = types.AmbiguitySkip
	}
	return &ContainerStressifier{
		runtime: rt,
		image:   image,
		env: []string{
			EnvSymbol + "=" + string(symbol),
			EnvOnAmbiguity + "=" + string(policy),
		},
		timeout: timeout,
	}, nil
}

// Transform runs the image once for text. Blank units are returned without
// starting a container.
func (c *ContainerStressifier) Transform(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, c.env, strings.NewReader(text), &out); err != nil {
		return "", fmt.Errorf("stressing with %s: %w", c.image, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%s produced empty output", c.image)
	}

	// Line-oriented tools terminate their output with a newline.
	res := out.String()
	if !strings.HasSuffix(text, "\n") {
		res = strings.TrimSuffix(res, "\n")
	}
	return res, nil
}
