package main

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
)

// Demo consumption on top of the default inventory, which is seeded with the
// usage already recorded. The first three requests fit what is left. The last
// three are rejected by the ingestor: unassigned resource, negative amount and
// an amount above the 200 units of coal that remain.
var scenario = []domain.UsageEvent{
	{ConsumerID: 1, Resource: "Recyclable Waste", Amount: 25},
	{ConsumerID: 1, Resource: "Solar Energy Grid", Amount: 150},
	{ConsumerID: 2, Resource: "Municipal Water", Amount: 100},
	{ConsumerID: 1, Resource: "Coal Power Plant", Amount: 100},
	{ConsumerID: 2, Resource: "Municipal Water", Amount: -50},
	{ConsumerID: 2, Resource: "Coal Power Plant", Amount: 5000},
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	config.SetupLogging(config.LogLevel(), config.LogFormat())

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID("resource-simulator")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	topic := config.MQTTTopic()
	for _, ev := range scenario {
		ev.Timestamp = time.Now().UTC()
		payload, err := json.Marshal(ev)
		if err != nil {
			log.Fatal().Err(err).Msg("encode usage event")
		}
		token := client.Publish(topic, 1, false, payload)
		token.Wait()
		if err := token.Error(); err != nil {
			log.Error().Err(err).Msg("publish failed")
			continue
		}
		log.Info().Int64("consumer", ev.ConsumerID).Str("resource", ev.Resource).Float64("amount", ev.Amount).Msg("usage published")
		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Msg("simulation done")
}
