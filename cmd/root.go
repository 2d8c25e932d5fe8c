package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mikeMule/gebeta-client/internal/models"
	"github.com/mikeMule/gebeta-client/internal/session"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gebeta-client",
	Short: "Headless client core for the Gebeta food delivery platform",
	Long:  `gebeta-client hosts the food delivery client core (cart engine, delivery pricing, realtime notification channel) and runs a synthetic ordering session against it, streaming session events to console, file or Kafka.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		log := logrus.New()
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		sim, err := session.NewSimulator(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("cannot create session simulator")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := sim.Run(ctx); err != nil {
			log.WithError(err).Fatal("session simulation failed")
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().String("api-base-url", "http://localhost:3000", "Base URL of the platform REST API")
	rootCmd.Flags().String("websocket-url", "ws://localhost:3000/ws", "WebSocket endpoint for realtime notifications")
	rootCmd.Flags().String("user-id", "", "Identity sent in the authenticate frame")
	rootCmd.Flags().String("user-type", "", "Identity type sent in the authenticate frame")
	rootCmd.Flags().String("restaurant-id", "", "Restaurant identity for admin sessions")
	rootCmd.Flags().Duration("retry-delay", 0, "Reconnect delay for the notification channel")
	rootCmd.Flags().Int("seed", 42, "Random seed for the session simulator")
	rootCmd.Flags().Int("sim-events", 100, "Number of session events to simulate")
	rootCmd.Flags().Int("initial-restaurants", 10, "Demo restaurants to generate")
	rootCmd.Flags().Int("items-per-restaurant", 8, "Demo menu items per restaurant")
	rootCmd.Flags().Bool("kafka-enabled", false, "Publish session events to Kafka")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("output-file", "", "Directory for per-topic JSONL session event files")

	bindings := map[string]string{
		"api_base_url":         "api-base-url",
		"websocket_url":        "websocket-url",
		"user_id":              "user-id",
		"user_type":            "user-type",
		"restaurant_id":        "restaurant-id",
		"retry_delay":          "retry-delay",
		"seed":                 "seed",
		"sim_events":           "sim-events",
		"initial_restaurants":  "initial-restaurants",
		"items_per_restaurant": "items-per-restaurant",
		"kafka_enabled":        "kafka-enabled",
		"kafka_broker_list":    "kafka-broker-list",
		"output_file_path":     "output-file",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
			cobra.CheckErr(err)
		}
	}
}

func initConfig() {
	viper.AutomaticEnv()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
