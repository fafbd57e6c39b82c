package testsCommon

import "context"

// TriggerStub -
type TriggerStub struct {
	ProcessHandler func(ctx context.Context)
}

// Process -
func (stub *TriggerStub) Process(ctx context.Context) {
	if stub.ProcessHandler != nil {
		stub.ProcessHandler(ctx)
	}
}

// IsInterfaceNil -
func (stub *TriggerStub) IsInterfaceNil() bool {
	return stub == nil
}
