package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/healthwatch/internal/bus"
	"github.com/donaldgifford/healthwatch/internal/config"
	"github.com/donaldgifford/healthwatch/internal/engine"
	"github.com/donaldgifford/healthwatch/internal/events"
	"github.com/donaldgifford/healthwatch/internal/notify"
	"github.com/donaldgifford/healthwatch/internal/sampler"
	"github.com/donaldgifford/healthwatch/internal/store"
	"github.com/donaldgifford/healthwatch/pkg/logger"
)

// app holds the components shared by serve and the one-shot commands.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	store     *store.PostgresStore
	notifier  notify.Notifier
	publisher *bus.NATSPublisher
	events    *events.Service
	evaluator *engine.Evaluator
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Format), nil
}

// newApp connects to the database and builds the event pipeline and the
// evaluator. The caller must call close.
func newApp(ctx context.Context) (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		store:    st,
		notifier: newNotifier(cfg.Notifications.Discord, log),
	}

	var evOpts []events.Option
	if cfg.Bus.NATS.Enabled {
		pub, err := bus.Connect(cfg.Bus.NATS.URL, cfg.Bus.NATS.SubjectPrefix)
		if err != nil {
			st.Close()
			return nil, err
		}
		a.publisher = pub
		evOpts = append(evOpts, events.WithPublisher(pub))
		log.Info("publishing events to nats", "url", cfg.Bus.NATS.URL, "prefix", cfg.Bus.NATS.SubjectPrefix)
	}

	a.events = events.NewService(st, a.notifier, logger.Component(log, "events"), evOpts...)

	samplerOpts := []sampler.Option{sampler.WithCPUWindow(cfg.Monitoring.CPUSampleWindow)}
	if !cfg.Storage.Remote {
		samplerOpts = append(samplerOpts, sampler.WithLocalDisk(cfg.Storage.LocalPath))
	}
	smp := sampler.New(sampler.HostSource{}, logger.Component(log, "sampler"), samplerOpts...)

	a.evaluator = engine.NewEvaluator(smp, st, a.events,
		engine.WithLogger(logger.Component(log, "evaluator")),
		engine.WithDefaultLimits(cfg.Monitoring.DefaultStorageLimit, cfg.Monitoring.DefaultFileLimit),
	)
	return a, nil
}

func (a *app) close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	a.store.Close()
}

// newNotifier returns a Discord notifier when Discord is enabled. An enabled
// block without a webhook URL still builds one; its deliveries are no-ops.
func newNotifier(d config.DiscordConfig, log *slog.Logger) notify.Notifier {
	if !d.Enabled {
		return notify.NewNoOpNotifier(logger.Component(log, "notify"))
	}
	if d.WebhookURL == "" {
		log.Warn("discord notifications enabled without a webhook url; notifications will be dropped")
	}
	return notify.NewDiscordNotifier(d.WebhookURL,
		notify.WithLogger(logger.Component(log, "discord")),
		notify.WithIdentity(d.Username, d.AvatarURL),
		notify.WithFooter(d.Footer),
		notify.WithEnvironment(d.Environment),
		notify.WithRateLimit(d.RatePerMinute, 5),
		notify.WithHTTPClient(&http.Client{Timeout: d.Timeout}),
	)
}

func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}
