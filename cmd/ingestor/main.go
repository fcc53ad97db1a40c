package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/database"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/repository"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/service"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	config.SetupLogging(config.LogLevel(), config.LogFormat())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	repos := repository.New(db)
	if err := repos.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	svcs := service.New(repos, service.Options{
		AlertThreshold: config.AlertThreshold(),
		Metrics:        metrics.New(prometheus.NewRegistry()),
	})

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID("resource-ingestor")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		if err := svcs.Usage.FromMQTT(msg.Topic(), msg.Payload()); err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("usage rejected")
		}
	}

	topic := config.MQTTTopic()
	if token := client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	log.Info().Str("topic", topic).Msg("ingestor running; Ctrl+C to stop")
	<-ctx.Done()
	log.Info().Msg("ingestor stopped")
}
