package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/carbon"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/cloud"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/database"
	httpHandlers "github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/http"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/repository"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/service"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	config.SetupLogging(config.LogLevel(), config.LogFormat())
	ctx := context.Background()

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	repos := repository.New(db)
	if err := repos.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	inv, err := repository.LoadInventory(config.SeedFile())
	if err != nil {
		log.Fatal().Err(err).Msg("inventory load failed")
	}
	if err := repos.Seed(ctx, inv); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svcs := service.New(repos, service.Options{
		External: carbon.NewClimatiq(carbon.ClimatiqConfig{
			URL:        config.ClimatiqAPIURL(),
			APIKey:     config.ClimatiqAPIKey(),
			ActivityID: config.ClimatiqActivityID(),
			Region:     config.ClimatiqRegion(),
			Timeout:    config.ClimatiqTimeout(),
		}),
		Notifier:       notifier(ctx),
		AlertThreshold: config.AlertThreshold(),
		Metrics:        m,
	})

	app := httpHandlers.NewApp()
	httpHandlers.Register(app, svcs, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Str("db_driver", config.DBDriver()).Msg("api listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}

func notifier(ctx context.Context) service.AlertNotifier {
	if !config.UseCloudServices() || config.SNSTopicArn() == "" {
		return cloud.LogNotifier{}
	}
	sns, err := cloud.NewSNSClient(ctx, config.AWSRegion(), config.SNSTopicArn())
	if err != nil {
		log.Warn().Err(err).Msg("sns unavailable, alerts will only be logged")
		return cloud.LogNotifier{}
	}
	log.Info().Str("topic", config.SNSTopicArn()).Msg("critical alerts published to sns")
	return sns
}
