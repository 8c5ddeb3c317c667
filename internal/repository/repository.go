// Package repository provides the server-side stores that hold browser
// sessions.
package repository

import (
	"context"
	"fmt"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ghaggin/policy-portal/internal/config"
)

type storeParams struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

// NewStore builds the session store named in the config and ties its
// shutdown to the application lifecycle.
func NewStore(p storeParams) (scs.Store, error) {
	switch p.Config.Session.Store {
	case config.StoreMemory:
		s := memstore.New()
		p.LC.Append(fx.Hook{
			OnStop: func(context.Context) error {
				s.StopCleanup()
				return nil
			},
		})
		return s, nil
	case config.StoreFile:
		s := NewJSON(p.Config.Session.File.Path, p.Log)
		p.LC.Append(fx.Hook{
			OnStop: s.stop,
		})
		return s, nil
	case config.StoreRedis:
		s := NewRedis(p.Config.Session.Redis, p.Log)
		p.LC.Append(fx.Hook{
			OnStop: s.stop,
		})
		return s, nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownStore, p.Config.Session.Store)
}
