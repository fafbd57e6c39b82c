package factory

import "context"

// Engine defines the resolution round operation
type Engine interface {
	Process(ctx context.Context)
	IsInterfaceNil() bool
}

// Server defines the operation of an entity able to serve requests
type Server interface {
	Start()
	Address() string
	Close() error
}
