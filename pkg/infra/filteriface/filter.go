package filteriface

import (
	filterTypes "github.com/NeuralTrust/GateFilters/pkg/infra/filters/types"
	"github.com/NeuralTrust/GateFilters/pkg/types"
)

//go:generate mockery --name=Filter --dir=. --output=./mocks --filename=filter_mock.go --case=underscore --with-expecter
type Filter interface {
	Name() string
	// Phase returns the phase the filter runs in.
	Phase() filterTypes.Phase
	// Order positions the filter inside its phase; lower runs first.
	Order() int
	// ShouldFilter decides whether Run is invoked for this request.
	ShouldFilter(req *types.RequestContext) bool
	// Run applies the filter decision by mutating the request context.
	// Expected outcomes such as a denial are context mutations, not errors.
	Run(req *types.RequestContext) error
}
