// Package modkit provides module wiring and the shared dependency bundle
package modkit

import (
	"flowqfit/internal/modkit/repokit"
	"flowqfit/internal/platform/config"
	"flowqfit/internal/platform/logger"
	"flowqfit/internal/platform/store"

	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds the core dependencies handed to every module; PG and CH are nil when disabled
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	CH      store.Clickhouse
	Metrics prometheus.Registerer
}

// Registerer returns Metrics or a throwaway registry so modules never nil check
func (d Deps) Registerer() prometheus.Registerer {
	if d.Metrics == nil {
		return prometheus.NewRegistry()
	}
	return d.Metrics
}
