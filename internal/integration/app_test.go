package integration_test

import (
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/picture-palace-hub/internal/app"
	"github.com/metinatakli/picture-palace-hub/internal/events"
	"github.com/metinatakli/picture-palace-hub/internal/mailer"
	"github.com/metinatakli/picture-palace-hub/internal/payment"
	"github.com/metinatakli/picture-palace-hub/internal/repository"
	appvalidator "github.com/metinatakli/picture-palace-hub/internal/validator"
	"github.com/redis/go-redis/v9"
)

const checkoutBaseUrl = "https://checkout.test"

type TestApp struct {
	App       *app.Application
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Mailer    *mailer.MockMailer
	Publisher *events.Recorder
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockMailer := mailer.NewMockMailer()
	publisher := &events.Recorder{}

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		mockMailer,
		app.NewSessionManager(redisClient, cfg.Auth.SessionIdleTimeout),
		publisher,
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresTokenRepository(db),
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresHallRepository(db),
		repository.NewPostgresShowRepository(db),
		repository.NewPostgresOrderRepository(db),
		repository.NewPostgresPaymentRepository(db),
		payment.NewMockPaymentProvider(checkoutBaseUrl),
	)

	return &TestApp{
		App:       application,
		DB:        db,
		Redis:     redisClient,
		Mailer:    mockMailer,
		Publisher: publisher,
	}, nil
}

func (a *TestApp) Close() {
	a.Redis.Close()
	a.DB.Close()
}
