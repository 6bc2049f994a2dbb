package checkers

import (
	"context"
	"errors"
)

// ModelChecker reports whether the language model client is configured.
// It does not call the provider; readiness must not burn tokens.
type ModelChecker struct {
	apiKey string
}

func NewModelChecker(apiKey string) *ModelChecker {
	return &ModelChecker{apiKey: apiKey}
}

func (c *ModelChecker) Name() string { return "model" }

func (c *ModelChecker) Check(ctx context.Context) error {
	if c.apiKey == "" {
		return errors.New("model api key is not configured")
	}
	return nil
}
