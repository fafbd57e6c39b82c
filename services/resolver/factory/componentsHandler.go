package factory

import (
	"context"
	"sync"
	"time"

	"github.com/statpage/metric-resolver/commonGo"
	"github.com/statpage/metric-resolver/services/resolver/api"
	"github.com/statpage/metric-resolver/services/resolver/config"
	"github.com/statpage/metric-resolver/services/resolver/docsync"
	"github.com/statpage/metric-resolver/services/resolver/engine"
	"github.com/statpage/metric-resolver/services/resolver/fetcher"
	"github.com/statpage/metric-resolver/services/resolver/registry"
	"github.com/statpage/metric-resolver/services/resolver/resolver"
	"github.com/statpage/metric-resolver/services/resolver/storage"
)

type componentsHandler struct {
	registry        api.Registry
	store           api.Storage
	engine          Engine
	server          Server
	mutCancel       sync.Mutex
	cancel          func()
	resolveInterval time.Duration
}

// NewComponentsHandler creates a new components handler
func NewComponentsHandler(
	serviceKeyApi string,
	cfg config.Config,
) (*componentsHandler, error) {
	reg, err := registry.NewTomlRegistry(cfg.MetricsFile)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath, cfg.RetentionSeconds)
	if err != nil {
		return nil, err
	}

	fetch := fetcher.NewHTTPFetcher(time.Duration(cfg.FetchTimeoutInSeconds)*time.Second, cfg.MaxConcurrentFetches)

	metricResolver, err := resolver.NewMetricResolver(fetch)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	batchResolver, err := resolver.NewBatchResolver(metricResolver)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	var docSyncer engine.DocSync
	if cfg.DocSync.Enabled {
		docSyncer = docsync.NewHTTPDocSync(
			cfg.DocSync.Endpoint,
			serviceKeyApi,
			cfg.DocSync.DocumentID,
			time.Duration(cfg.DocSync.TimeoutInSeconds)*time.Second,
		)
	}

	eng, err := engine.NewResolverEngine(reg, batchResolver, store, docSyncer)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	serverArgs := api.ArgsWebServer{
		ServiceKeyApi:  serviceKeyApi,
		ListenAddress:  cfg.ListenAddress,
		Storage:        store,
		Registry:       reg,
		Trigger:        eng,
		GeneralHandler: api.CORSMiddleware,
	}

	server, err := api.NewServer(serverArgs)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &componentsHandler{
		registry:        reg,
		store:           store,
		engine:          eng,
		server:          server,
		resolveInterval: time.Duration(cfg.ResolveIntervalInSeconds) * time.Second,
	}, nil
}

// GetRegistry returns the registry component
func (ch *componentsHandler) GetRegistry() api.Registry {
	return ch.registry
}

// GetStore returns the storage component
func (ch *componentsHandler) GetStore() api.Storage {
	return ch.store
}

// GetEngine returns the engine component
func (ch *componentsHandler) GetEngine() Engine {
	return ch.engine
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel != nil {
		return
	}

	var ctx context.Context
	ctx, ch.cancel = context.WithCancel(context.Background())

	ch.server.Start()
	commonGo.CronJobStarter(ctx, ch.engine.Process, ch.resolveInterval)
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel != nil {
		ch.cancel()
		ch.cancel = nil
	}

	_ = ch.server.Close()
	_ = ch.store.Close()
}
