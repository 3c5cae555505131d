package commands

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"lindas-hydro/internal/domain/gateway/api"
	"lindas-hydro/internal/domain/gateway/cache"
	"lindas-hydro/internal/domain/gateway/db"
	"lindas-hydro/internal/domain/gateway/file"
	"lindas-hydro/internal/domain/gateway/index"
	"lindas-hydro/internal/domain/gateway/queue"
	"lindas-hydro/internal/domain/query"
	"lindas-hydro/internal/domain/usecase/collect"
	"lindas-hydro/internal/domain/usecase/health"
	"lindas-hydro/internal/domain/usecase/observation"
	"lindas-hydro/internal/infra/aws"
	gormdb "lindas-hydro/internal/infra/database/gorm"
	"lindas-hydro/internal/infra/database/sqlc"
	"lindas-hydro/pkg/http"
	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
	"lindas-hydro/pkg/redis"
	"lindas-hydro/pkg/resource"
)

// application holds the wired use cases and the resources to release on exit.
type application struct {
	store   *file.CSVObservationStore
	collect collect.UseCase
	reads   observation.UseCase
	health  health.UseCase

	closers []func() error
}

// newStore resolves the data directory and opens the observation file.
func newStore() (*file.CSVObservationStore, error) {
	dir, err := file.ResolveDataDir(resource.GetString("app.storage.data-dir"))
	if err != nil {
		return nil, err
	}
	return file.NewCSVObservationStore(dir, resource.GetString("app.storage.file-name"))
}

// newQuery validates the configured sites and parameters and builds the SPARQL query.
func newQuery(vocabulary query.Vocabulary) (string, error) {
	builder := query.NewBuilder(vocabulary, resource.GetStringOrDefault("app.lindas.graph", query.DefaultGraph))

	sites := resource.GetList("app.lindas.site-codes")
	if len(sites) == 0 {
		sites = query.DefaultSiteCodes
	}
	if err := builder.AddSites(sites); err != nil {
		return "", err
	}

	parameters := resource.GetList("app.lindas.parameters")
	if len(parameters) == 0 {
		parameters = query.DefaultParameters
	}
	if err := builder.AddParameters(parameters); err != nil {
		return "", err
	}

	sparql, err := builder.Build()
	if err != nil {
		return "", err
	}
	log.Debug(msg.GetMessage("collect.query-built", sparql))
	return sparql, nil
}

func newHydroGateway() (api.HydroGateway, error) {
	format, err := api.ParseResultFormat(resource.GetString("app.lindas.result-format"))
	if err != nil {
		return nil, err
	}

	backoff := http.DefaultBackoffConfig()
	if resource.IsSet("app.lindas.max-retries") {
		backoff.MaxRetries = resource.GetInt("app.lindas.max-retries")
	}
	if interval := resource.GetDuration("app.lindas.retry-initial-interval"); interval > 0 {
		backoff.InitialInterval = interval
	}
	if interval := resource.GetDuration("app.lindas.retry-max-interval"); interval > 0 {
		backoff.MaxInterval = interval
	}

	return api.NewHydroGateway(
		resource.GetStringOrDefault("app.lindas.endpoint", "https://ld.admin.ch/query"),
		format,
		http.ClientOptions{
			ReadTimeout: resource.GetDuration("app.lindas.timeout"),
			Backoff:     backoff,
			Logger:      http.NewZapLogger(log.Named("sparql")),
		},
	), nil
}

// newApplication wires the collector. Database, Redis and SQS are only
// connected when enabled in configuration.
func newApplication(ctx context.Context) (*application, error) {
	app := &application{}

	store, err := newStore()
	if err != nil {
		return nil, err
	}
	app.store = store

	vocabulary := query.NewVocabulary(resource.GetStringOrDefault("app.lindas.base-url", query.DefaultBaseURL))
	sparql, err := newQuery(vocabulary)
	if err != nil {
		return nil, err
	}

	hydro, err := newHydroGateway()
	if err != nil {
		return nil, err
	}

	var (
		keys       index.KeyIndex = index.NewFileKeyIndex(store)
		sinks      collect.Sinks
		components health.Components
		latest     cache.LatestCache
	)

	if resource.GetBool("app.db.enabled") {
		database, err := app.openDatabase(ctx)
		if err != nil {
			return nil, app.fail(err)
		}
		observations := db.NewSQLCObservationGateway(database)
		if err = observations.Migrate(ctx); err != nil {
			return nil, app.fail(err)
		}

		orm, err := gormdb.Open(database)
		if err != nil {
			return nil, app.fail(err)
		}
		runs := db.NewGormCollectionRunGateway(orm)
		if err = runs.Migrate(); err != nil {
			return nil, app.fail(err)
		}

		sinks.Observations = observations
		sinks.Runs = runs
		components.Database = db.NewSQLCHealthDBGateway(database)
	}

	if resource.GetBool("app.redis.enabled") {
		client, err := redis.NewClient(redis.NewRedisConfig().
			WithHost(resource.GetString("app.redis.host")).
			WithPort(resource.GetInt("app.redis.port")).
			WithPassword(resource.GetString("app.redis.password")).
			WithDatabase(resource.GetInt("app.redis.db")).
			WithKeyPrefix(resource.GetString("app.redis.key-prefix")))
		if err != nil {
			return nil, app.fail(err)
		}
		app.closers = append(app.closers, client.Close)

		redisKeys := index.NewRedisKeyIndex(client, store)
		keys = redisKeys
		latest = cache.NewRedisLatestCache(client, resource.GetDuration("app.redis.latest-ttl"))
		sinks.Latest = latest
		components.Cache = cache.NewRedisHealthGateway(client, redisKeys)
	}

	if resource.GetBool("app.sqs.enabled") {
		settings := aws.Settings{
			Region:    resource.GetString("app.sqs.region"),
			Endpoint:  resource.GetString("app.sqs.endpoint"),
			AccessKey: resource.GetString("app.sqs.access-key"),
			SecretKey: resource.GetString("app.sqs.secret-key"),
		}
		cfg, err := aws.LoadConfig(ctx, settings)
		if err != nil {
			return nil, app.fail(err)
		}
		queueURL := strings.TrimSpace(resource.GetString("app.sqs.queue-url"))
		if queueURL == "" {
			return nil, app.fail(errors.New("app.sqs.queue-url is required when SQS is enabled"))
		}

		sender := aws.NewSQSSenderAdapter(aws.NewSqsClient(cfg, settings))
		sinks.Queue = sender
		sinks.QueueName = queueURL
		components.Queue = queue.NewQueueHealthGateway(sender, queueURL)
	}

	app.collect = collect.NewCollectUseCase(sparql, vocabulary, hydro, store, keys, sinks)
	app.reads = observation.NewObservationUseCase(store, latest)
	app.health = health.NewHealthUseCase(store, app.collect, components)
	return app, nil
}

func (app *application) openDatabase(ctx context.Context) (*sql.DB, error) {
	database, err := sqlc.Open(ctx, sqlc.Settings{
		Host:     resource.GetString("app.db.host"),
		Port:     resource.GetString("app.db.port"),
		Username: resource.GetString("app.db.username"),
		Password: resource.GetString("app.db.password"),
		Database: resource.GetString("app.db.database"),
		Schema:   resource.GetString("app.db.schema"),
		SSLMode:  resource.GetString("app.db.ssl-mode"),
	})
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, database.Close)
	return database, nil
}

// fail releases what was opened so far and returns err.
func (app *application) fail(err error) error {
	_ = app.Close()
	return err
}

func (app *application) Close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i]())
	}
	app.closers = nil
	return errors.Join(errs...)
}
