package checkers

import (
	"context"
)

// StoreChecker verifies the session store is reachable. With an in-process
// store this only guards against wiring mistakes, but it keeps /ready honest.
type StoreChecker struct {
	probe func() error
}

func NewStoreChecker(probe func() error) *StoreChecker {
	return &StoreChecker{probe: probe}
}

func (c *StoreChecker) Name() string { return "store" }

func (c *StoreChecker) Check(ctx context.Context) error {
	return c.probe()
}
