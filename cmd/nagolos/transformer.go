// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/nagolos/internal/container"
	"github.com/pdiddy/nagolos/internal/dictionary"
	"github.com/pdiddy/nagolos/internal/logging"
	"github.com/pdiddy/nagolos/internal/pipeline"
	"github.com/pdiddy/nagolos/internal/secrets"
	"github.com/pdiddy/nagolos/internal/stress"
	"github.com/pdiddy/nagolos/pkg/types"
)

// newTransformer builds the stress annotator selected by cfg. The returned
// function releases whatever the annotator holds open.
func newTransformer(ctx context.Context, cfg types.StressConfig, s secrets.Secrets) (pipeline.Transformer, func() error, error) {
	noop := func() error { return nil }
	opts := stress.Options{
		Symbol:      cfg.Symbol,
		OnAmbiguity: cfg.OnAmbiguity,
		Logger:      logging.New("stress"),
	}

	switch cfg.Backend {
	case types.BackendNone:
		return stress.Passthrough{}, noop, nil

	case types.BackendContainer:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, nil, err
		}
		c, err := stress.NewContainerStressifier(ctx, rt, cfg.Image, cfg.Timeout, opts)
		if err != nil {
			return nil, nil, err
		}
		return c, noop, nil

	case types.BackendHTTP:
		token := s.Get(secrets.StressAPIToken)
		if token == "" {
			opts.Logger.Debug("no stress service token found", "file", secrets.StressAPIToken)
		}
		return &stress.HTTPStressifier{
			Client:     &http.Client{Timeout: cfg.Timeout},
			URL:        cfg.URL,
			Token:      token,
			MaxRetries: cfg.MaxRetries,
			Options:    opts,
		}, noop, nil

	case types.BackendDictionary, "":
		d, err := dictionary.Open(cfg.Dictionary)
		if err != nil {
			return nil, nil, err
		}
		return stress.NewStressifier(d, opts), d.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown stress backend %q", cfg.Backend)
}
