// Package server wires the configured storage backend, the services and
// the collaborators together and runs the gRPC and ops servers until a
// termination signal arrives.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/transkeeper/internal/logging"
	"github.com/dmitrijs2005/transkeeper/internal/server/config"
	"github.com/dmitrijs2005/transkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/transkeeper/internal/server/ops"
	"github.com/dmitrijs2005/transkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/transkeeper/internal/server/services"
	"github.com/dmitrijs2005/transkeeper/internal/server/speech"
	"github.com/dmitrijs2005/transkeeper/internal/server/textlog"
	"github.com/dmitrijs2005/transkeeper/internal/server/translator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	gs "github.com/dmitrijs2005/transkeeper/internal/server/grpc"
)

type App struct {
	config             *config.Config
	logger             logging.Logger
	repomanager        repomanager.RepositoryManager
	registry           *prometheus.Registry
	accountService     *services.AccountService
	historyService     *services.HistoryService
	translationService *services.TranslationService
	exportService      *services.ExportService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogLevel, c.LogFormat, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	m, err := repomanager.New(ctx, c.StorageBackend, c.DatabaseDSN, c.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(registry)

	as := services.NewAccountService(m, c, logger)
	hs := services.NewHistoryService(m, c, logger)
	ts := services.NewTranslationService(
		newTranslator(c),
		newSynthesizer(c),
		newRecognizer(c),
		hs,
		textlog.New(c.TextLogPath),
		c.CollaboratorTimeout,
		logger,
	)
	es := services.NewExportService(hs, c, logger)

	if err := as.EnsureRootAdmin(ctx, c.RootAdminPassword); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("root admin bootstrap error: %w", err)
	}

	return &App{
		config:             c,
		logger:             logger,
		repomanager:        m,
		registry:           registry,
		accountService:     as,
		historyService:     hs,
		translationService: ts,
		exportService:      es,
	}, nil
}

func newTranslator(c *config.Config) translator.Translator {
	if c.TranslatorBackend == config.TranslatorOffline {
		return translator.NewStubTranslator(nil)
	}
	return translator.NewLibreClient(c.TranslatorURL, c.TranslatorAPIKey, &http.Client{})
}

// newSynthesizer puts the configured TTS engine in front of the offline one.
func newSynthesizer(c *config.Config) speech.Synthesizer {
	var engines []speech.Synthesizer
	if c.TTSURL != "" {
		engines = append(engines, speech.NewHTTPSynthesizer(c.TTSURL, &http.Client{}))
	}
	engines = append(engines, speech.NewStubSynthesizer(nil))
	return speech.NewSynthesizerChain(engines...)
}

func newRecognizer(c *config.Config) speech.Recognizer {
	var engines []speech.Recognizer
	if c.STTURL != "" {
		engines = append(engines, speech.NewHTTPRecognizer(c.STTURL, &http.Client{}))
	}
	if c.TranslatorBackend == config.TranslatorOffline {
		engines = append(engines, speech.NewStubRecognizer(nil))
	}
	return speech.NewRecognizerChain(engines...)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(gs.Options{
		Address:           app.config.EndpointAddrGRPC,
		SecretKey:         app.config.SecretKey,
		AuthRatePerMinute: app.config.AuthRatePerMinute,
	}, app.logger, app.accountService, app.historyService, app.translationService, app.exportService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startOpsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if app.config.EndpointAddrHTTP == "" {
		return
	}
	if err := ops.NewServer(app.config.EndpointAddrHTTP, app.registry, app.logger).Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend, "translator", app.config.TranslatorBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startOpsServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
