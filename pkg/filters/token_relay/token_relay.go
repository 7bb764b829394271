package token_relay

import (
	"github.com/NeuralTrust/GateFilters/pkg/infra/filteriface"
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/types"
)

const (
	FilterName = "token_relay"
	Order      = 10000

	relayedHeader = "authorization"
)

// TokenRelayFilter lets the caller's credential travel to the backend by
// taking the Authorization header off the ignored set.
type TokenRelayFilter struct{}

func NewTokenRelayFilter() filteriface.Filter {
	return &TokenRelayFilter{}
}

func (f *TokenRelayFilter) Name() string {
	return FilterName
}

func (f *TokenRelayFilter) Phase() filterTypes.Phase {
	return filterTypes.Pre
}

func (f *TokenRelayFilter) Order() int {
	return Order
}

func (f *TokenRelayFilter) ShouldFilter(_ *types.RequestContext) bool {
	return true
}

func (f *TokenRelayFilter) Run(req *types.RequestContext) error {
	req.RelayHeader(relayedHeader)
	return nil
}
