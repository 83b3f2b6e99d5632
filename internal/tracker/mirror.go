package tracker

import (
	"context"

	"jobpilot.local/internal/domain"
)

// Mirror copies application changes to an external system. Failures are
// logged by the service and never fail the originating operation.
type Mirror interface {
	// Created returns the external page id, or "" if nothing was created.
	Created(ctx context.Context, app domain.Application) (string, error)
	Updated(ctx context.Context, app domain.Application) error
	Deleted(ctx context.Context, app domain.Application) error
}

type nopMirror struct{}

func (nopMirror) Created(context.Context, domain.Application) (string, error) { return "", nil }
func (nopMirror) Updated(context.Context, domain.Application) error           { return nil }
func (nopMirror) Deleted(context.Context, domain.Application) error           { return nil }
