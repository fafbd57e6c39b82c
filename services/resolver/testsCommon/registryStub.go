package testsCommon

import (
	"errors"

	"github.com/statpage/metric-resolver/services/resolver/common"
)

// RegistryStub -
type RegistryStub struct {
	ListHandler func() []common.MetricDefinition
	GetHandler  func(id string) (common.MetricDefinition, error)
}

// List -
func (stub *RegistryStub) List() []common.MetricDefinition {
	if stub.ListHandler != nil {
		return stub.ListHandler()
	}

	return make([]common.MetricDefinition, 0)
}

// Get -
func (stub *RegistryStub) Get(id string) (common.MetricDefinition, error) {
	if stub.GetHandler != nil {
		return stub.GetHandler(id)
	}

	return common.MetricDefinition{}, errors.New("not found")
}

// IsInterfaceNil -
func (stub *RegistryStub) IsInterfaceNil() bool {
	return stub == nil
}
