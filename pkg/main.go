package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/glimpse-social/glimpse/pkg/internal"
	"github.com/glimpse-social/glimpse/pkg/internal/cache"
	"github.com/glimpse-social/glimpse/pkg/internal/database"
	"github.com/glimpse-social/glimpse/pkg/internal/mediakit"
	"github.com/glimpse-social/glimpse/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("  ____ _ _\n / ___| (_)_ __ ___  _ __  ___  ___\n| |  _| | | '_ ` _ \\| '_ \\/ __|/ _ \\\n| |_| | | | | | | | | |_) \\__ \\  __/\n \\____|_|_|_| |_| |_| .__/|___/\\___|\n                    |_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf(pkg.AppName), pkg.AppVersion)
	fmt.Printf("The relational core of the social network\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Prepare the local cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing the local cache.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Connect to object storage
	if len(viper.GetString("media.bucket")) > 0 {
		if uploader, err := mediakit.NewS3Uploader(); err != nil {
			log.Error().Err(err).Msg("An error occurred when connecting to object storage. Media features will be disabled.")
		} else {
			mediakit.U = uploader
			log.Info().Msg("Object storage connected.")
		}
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.Start()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
