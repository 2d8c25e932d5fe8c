package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL   string `mapstructure:"api_base_url"`
	WebSocketURL string `mapstructure:"websocket_url"`
	UserID       string `mapstructure:"user_id"`
	UserType     string `mapstructure:"user_type"`
	RestaurantID string `mapstructure:"restaurant_id"`

	RetryDelay     time.Duration `mapstructure:"retry_delay"`
	ServiceFeeRate float64       `mapstructure:"service_fee_rate"`

	// Delivery fee schedule
	BaseDeliveryFee     float64 `mapstructure:"base_delivery_fee"`
	ExtendedDeliveryFee float64 `mapstructure:"extended_delivery_fee"`
	BaseRadiusKm        float64 `mapstructure:"base_radius_km"`
	MidRadiusKm         float64 `mapstructure:"mid_radius_km"`
	FlatRadiusKm        float64 `mapstructure:"flat_radius_km"`
	PerKmBeyondFee      float64 `mapstructure:"per_km_beyond_fee"`
	AvgDeliverySpeed    float64 `mapstructure:"avg_delivery_speed"` // km/h, for delivery time estimates

	// Session simulator
	Seed               int    `mapstructure:"seed"`
	SimEvents          int    `mapstructure:"sim_events"`
	InitialRestaurants int    `mapstructure:"initial_restaurants"`
	ItemsPerRestaurant int    `mapstructure:"items_per_restaurant"`
	KafkaEnabled       bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList    string `mapstructure:"kafka_broker_list"`
	OutputFile         string `mapstructure:"output_file_path"`

	LocationCachePath string `mapstructure:"location_cache_path"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine, the defaults and any bound
		// flags carry the configuration. An explicit file must exist.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("api_base_url", "http://localhost:3000")
	viper.SetDefault("websocket_url", "ws://localhost:3000/ws")
	viper.SetDefault("retry_delay", "5s")
	viper.SetDefault("service_fee_rate", 0.05)
	viper.SetDefault("base_delivery_fee", 250.0)
	viper.SetDefault("extended_delivery_fee", 345.0)
	viper.SetDefault("base_radius_km", 5.0)
	viper.SetDefault("mid_radius_km", 10.0)
	viper.SetDefault("flat_radius_km", 20.0)
	viper.SetDefault("per_km_beyond_fee", 15.0)
	viper.SetDefault("avg_delivery_speed", 25.0)
	viper.SetDefault("seed", 42)
	viper.SetDefault("sim_events", 100)
	viper.SetDefault("initial_restaurants", 10)
	viper.SetDefault("items_per_restaurant", 8)
	viper.SetDefault("kafka_broker_list", "localhost:9092")
}
