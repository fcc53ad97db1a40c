package config

import (
	"time"

	"github.com/spf13/viper"
)

func Load() error {
	// API Configuration
	viper.SetDefault("API_ADDR", ":8080")
	viper.SetDefault("DASHBOARD_ADDR", ":3000")
	viper.SetDefault("API_URL", "http://localhost:8080")

	// Storage (sqlite for local dev, pgx for Postgres)
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "file:sustainability.db?_pragma=busy_timeout(5000)")
	viper.SetDefault("SEED_FILE", "")

	viper.SetDefault("MQTT_BROKER", "tcp://localhost:1883")
	viper.SetDefault("MQTT_TOPIC", "resources/usage")

	// Carbon estimates
	viper.SetDefault("CLIMATIQ_API_KEY", "")
	viper.SetDefault("CLIMATIQ_API_URL", "https://api.climatiq.io/data/v1/estimate")
	viper.SetDefault("CLIMATIQ_REGION", "US")
	viper.SetDefault("CLIMATIQ_ACTIVITY_ID", "electricity-supply_grid-source_residual_mix")
	viper.SetDefault("CLIMATIQ_TIMEOUT", "10s")
	viper.SetDefault("ALERT_THRESHOLD", 80.0)

	// AWS Configuration
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_S3_BUCKET", "sustainability-reports")
	viper.SetDefault("AWS_SNS_TOPIC_ARN", "")
	viper.SetDefault("USE_CLOUD_SERVICES", "false") // Toggle for local vs cloud

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")

	viper.AutomaticEnv()
	return nil
}

func APIAddr() string       { return viper.GetString("API_ADDR") }
func DashboardAddr() string { return viper.GetString("DASHBOARD_ADDR") }
func APIURL() string        { return viper.GetString("API_URL") }
func DBDriver() string      { return viper.GetString("DB_DRIVER") }
func DBDSN() string         { return viper.GetString("DB_DSN") }
func SeedFile() string      { return viper.GetString("SEED_FILE") }
func MQTTBroker() string    { return viper.GetString("MQTT_BROKER") }
func MQTTTopic() string     { return viper.GetString("MQTT_TOPIC") }

func ClimatiqAPIKey() string         { return viper.GetString("CLIMATIQ_API_KEY") }
func ClimatiqAPIURL() string         { return viper.GetString("CLIMATIQ_API_URL") }
func ClimatiqRegion() string         { return viper.GetString("CLIMATIQ_REGION") }
func ClimatiqActivityID() string     { return viper.GetString("CLIMATIQ_ACTIVITY_ID") }
func ClimatiqTimeout() time.Duration { return viper.GetDuration("CLIMATIQ_TIMEOUT") }
func AlertThreshold() float64        { return viper.GetFloat64("ALERT_THRESHOLD") }

func AWSRegion() string      { return viper.GetString("AWS_REGION") }
func S3Bucket() string       { return viper.GetString("AWS_S3_BUCKET") }
func SNSTopicArn() string    { return viper.GetString("AWS_SNS_TOPIC_ARN") }
func UseCloudServices() bool { return viper.GetBool("USE_CLOUD_SERVICES") }

func LogLevel() string  { return viper.GetString("LOG_LEVEL") }
func LogFormat() string { return viper.GetString("LOG_FORMAT") }
