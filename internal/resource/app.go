// Package resource initializes and runs the resource service: course
// management and enrollment behind the remote authorization gate.
package resource

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/coursekeeper/internal/dbx"
	"github.com/dmitrijs2005/coursekeeper/internal/httpx"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/config"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/gate"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/httpapi"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/repositories/repomanager"
	"github.com/dmitrijs2005/coursekeeper/internal/resource/services"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	introspector  gate.Introspector
	courseService *services.CourseService
	userService   *services.UserService
}

func newIntrospector(c *config.Config) (gate.Introspector, error) {
	switch c.IntrospectionTransport {
	case config.TransportHTTP:
		return gate.NewHTTPIntrospector(c.AuthURL, c.IntrospectionTimeout), nil
	case config.TransportGRPC:
		g, err := gate.NewGRPCIntrospector(c.IntrospectionAddrGRPC)
		if err != nil {
			return nil, fmt.Errorf("introspection client: %w", err)
		}
		return g, nil
	}
	return nil, fmt.Errorf("unsupported introspection transport %q", c.IntrospectionTransport)
}

func closeIntrospector(i gate.Introspector) error {
	if c, ok := i.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, os.Stdout)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.NewSQLRepositoryManager(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	introspector, err := newIntrospector(c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		introspector:  introspector,
		courseService: services.NewCourseService(db, rm, logger),
		userService:   services.NewUserService(db, rm, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	g := gate.New(app.introspector, app.config.IntrospectionTimeout, app.logger)
	h := httpapi.NewHandler(app.courseService, app.userService, g, app.logger, app.config.DebugRoutes)
	if err := httpx.ListenAndServe(ctx, app.config.EndpointAddrHTTP, h.Routes(), app.logger); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or the server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting resource service...",
		"introspection", app.config.IntrospectionTransport)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(ctx)
}

func (app *App) close(ctx context.Context) {
	if err := closeIntrospector(app.introspector); err != nil {
		app.logger.Error(ctx, "introspection client close error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	if z, ok := app.logger.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
}
