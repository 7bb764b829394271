package filters

import (
	"time"

	"github.com/NeuralTrust/GateFilters/pkg/infra/filteriface"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/infra/prometheus"
	"github.com/NeuralTrust/GateFilters/pkg/types"
	"github.com/sirupsen/logrus"
)

type FilterWrapper struct {
	Filter  filteriface.Filter
	logger  *logrus.Logger
	observe bool
}

func NewFilterWrapper(filter filteriface.Filter, logger *logrus.Logger, observe bool) *FilterWrapper {
	return &FilterWrapper{
		Filter:  filter,
		logger:  logger,
		observe: observe,
	}
}

func (w *FilterWrapper) Execute(req *types.RequestContext) (filterTypes.Outcome, error) {
	if !w.Filter.ShouldFilter(req) {
		w.record(req, filterTypes.OutcomeSkipped, 0)
		return filterTypes.OutcomeSkipped, nil
	}

	sendBefore := req.SendToBackend
	finalBefore := req.Response.Final

	start := time.Now()
	err := w.Filter.Run(req)
	latency := time.Since(start)

	outcome := filterTypes.OutcomePassed
	switch {
	case err != nil:
		outcome = filterTypes.OutcomeError
	case sendBefore && !req.SendToBackend:
		outcome = filterTypes.OutcomeBlocked
	case !finalBefore && req.Response.Final:
		outcome = filterTypes.OutcomeFinal
	}

	w.record(req, outcome, latency)
	return outcome, err
}

func (w *FilterWrapper) record(req *types.RequestContext, outcome filterTypes.Outcome, latency time.Duration) {
	if w.logger != nil && w.logger.IsLevelEnabled(logrus.DebugLevel) {
		w.logger.WithFields(logrus.Fields{
			"filter":     w.Filter.Name(),
			"phase":      req.Phase,
			"outcome":    outcome,
			"status":     req.Response.StatusCode,
			"latency":    latency.String(),
			"request_id": req.ID,
		}).Debug("filter executed")
	}

	if !w.observe || !prometheus.Config.EnableFilters {
		return
	}
	phase := string(w.Filter.Phase())
	prometheus.FilterDecisions.WithLabelValues(w.Filter.Name(), phase, string(outcome)).Inc()
	if outcome != filterTypes.OutcomeSkipped {
		prometheus.FilterLatency.WithLabelValues(w.Filter.Name(), phase).
			Observe(float64(latency.Microseconds()) / 1000)
	}
}
