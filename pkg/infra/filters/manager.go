package filters

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/NeuralTrust/GateFilters/pkg/infra/filteriface"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/types"
	"github.com/sirupsen/logrus"
)

// Manager keeps one ordered chain of filters per phase.
type Manager interface {
	RegisterFilter(filter filteriface.Filter) error
	GetFilter(name string) filteriface.Filter
	Filters(phase filterTypes.Phase) []filteriface.Filter
	ExecutePhase(ctx context.Context, phase filterTypes.Phase, req *types.RequestContext) error
}

type manager struct {
	mu      sync.RWMutex
	logger  *logrus.Logger
	observe bool
	filters map[string]filteriface.Filter
	chains  map[filterTypes.Phase][]filteriface.Filter
}

func NewManager(logger *logrus.Logger, opts ...Option) Manager {
	m := &manager{
		logger:  logger,
		observe: true,
		filters: make(map[string]filteriface.Filter),
		chains:  make(map[filterTypes.Phase][]filteriface.Filter),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterFilter adds a filter to the chain of its phase. Two filters of the same
// phase may not share an order value, so the execution order is always total.
func (m *manager) RegisterFilter(filter filteriface.Filter) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := filter.Name()
	phase := filter.Phase()
	if !phase.Valid() {
		return fmt.Errorf("%w: %q for filter %s", filterTypes.ErrInvalidPhase, phase, name)
	}
	if _, exists := m.filters[name]; exists {
		return fmt.Errorf("%w: %s", filterTypes.ErrDuplicateFilter, name)
	}
	for _, registered := range m.chains[phase] {
		if registered.Order() == filter.Order() {
			return fmt.Errorf(
				"%w: %s and %s both use order %d in phase %s",
				filterTypes.ErrDuplicateOrder, registered.Name(), name, filter.Order(), phase,
			)
		}
	}

	// chains are copy-on-write so ExecutePhase can iterate without holding the lock
	chain := make([]filteriface.Filter, 0, len(m.chains[phase])+1)
	chain = append(chain, m.chains[phase]...)
	chain = append(chain, filter)
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].Order() < chain[j].Order()
	})

	m.chains[phase] = chain
	m.filters[name] = filter
	return nil
}

func (m *manager) GetFilter(name string) filteriface.Filter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filters[name]
}

func (m *manager) Filters(phase filterTypes.Phase) []filteriface.Filter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]filteriface.Filter, len(m.chains[phase]))
	copy(out, m.chains[phase])
	return out
}

// ExecutePhase runs the filters of phase in ascending order. PRE stops as soon as the
// request is no longer headed to the backend, POST as soon as the response is final.
func (m *manager) ExecutePhase(ctx context.Context, phase filterTypes.Phase, req *types.RequestContext) error {
	m.mu.RLock()
	chain := m.chains[phase]
	m.mu.RUnlock()

	req.Phase = phase

	for _, filter := range chain {
		if shortCircuited(phase, req) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		wrapper := NewFilterWrapper(filter, m.logger, m.observe)
		if _, err := wrapper.Execute(req); err != nil {
			m.logger.WithError(err).WithFields(logrus.Fields{
				"filter":     filter.Name(),
				"phase":      phase,
				"request_id": req.ID,
			}).Error("filter execution failed")
			return fmt.Errorf("%w: %s: %w", filterTypes.ErrFilterExecution, filter.Name(), err)
		}
	}
	return nil
}

func shortCircuited(phase filterTypes.Phase, req *types.RequestContext) bool {
	switch phase {
	case filterTypes.Pre:
		return !req.SendToBackend
	case filterTypes.Post:
		return req.Response.Final
	default:
		return false
	}
}
