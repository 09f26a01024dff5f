// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package language

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrUnknownLanguage is returned when selecting a code not in the options.
var ErrUnknownLanguage = errors.New("unknown language code")

// PreferenceStore persists the preferred language.
type PreferenceStore interface {
	PreferredLanguage(ctx context.Context) (string, error)
	SetPreferredLanguage(ctx context.Context, code string) error
}

// Selector applies language choices to a PreferenceStore. Selecting never
// restarts or reloads anything; it only writes the preference.
type Selector struct {
	Options []Option
	Store   PreferenceStore
	Logger  *zap.Logger
}

// NewSelector builds a selector over the given options.
func NewSelector(opts []Option, store PreferenceStore, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{Options: opts, Store: store, Logger: logger}
}

// Select stores code as the preferred language. An empty code is ignored.
func (s *Selector) Select(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}
	if _, ok := Find(s.Options, code); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLanguage, code)
	}
	if err := s.Store.SetPreferredLanguage(ctx, code); err != nil {
		return fmt.Errorf("failed to save preferred language: %w", err)
	}
	s.Logger.Info("preferred language changed", zap.String("code", code))
	return nil
}

// Current returns the option for the stored preference. When nothing is
// stored, fallback (typically the system language) is matched instead.
func (s *Selector) Current(ctx context.Context, fallback string) (Option, bool) {
	code, err := s.Store.PreferredLanguage(ctx)
	if err != nil {
		s.Logger.Warn("failed to read preferred language", zap.Error(err))
	}
	if code != "" {
		if opt, ok := Find(s.Options, code); ok {
			return opt, true
		}
	}
	return Match(s.Options, fallback)
}
