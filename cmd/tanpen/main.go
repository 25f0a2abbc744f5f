package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/PizzaHomicide/tanpen/internal/api"
	"github.com/PizzaHomicide/tanpen/internal/config"
	"github.com/PizzaHomicide/tanpen/internal/log"
	"github.com/PizzaHomicide/tanpen/internal/player"
	"github.com/PizzaHomicide/tanpen/internal/repository/rest"
	"github.com/PizzaHomicide/tanpen/internal/service"
	"github.com/PizzaHomicide/tanpen/internal/session"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/models"
	"github.com/PizzaHomicide/tanpen/internal/version"
)

func main() {
	logStderr := flag.Bool("log-stderr", false, "Write logs to stderr instead of the log file")
	showEnv := flag.Bool("env", false, "List the supported environment variables and exit")
	setBaseURL := flag.String("set-base-url", "", "Save the API base URL to the config file and exit")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetVersionInfo())
		return
	}
	if *showEnv {
		for _, line := range config.EnvVarHelp() {
			fmt.Println(line)
		}
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// It is unrecoverable if we cannot produce an application config
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *setBaseURL != "" {
		if err := config.UpdateConfig(func(c *config.Config) { c.API.BaseURL = *setBaseURL }); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("API base URL saved")
		return
	}

	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		if errors.Is(err, config.ErrMissingBaseURL) {
			_, _ = fmt.Fprintln(os.Stderr, "Set it with `tanpen -set-base-url <url>` or TANPEN_CONFIG_API_BASE_URL.")
		}
		os.Exit(1)
	}

	// Initialise logger
	var logger *log.Logger
	if *logStderr {
		logger = log.NewWriter(os.Stderr, cfg.Logging.Level)
	} else {
		logger, err = log.New(log.Config{
			Level:    cfg.Logging.Level,
			FilePath: cfg.Logging.FilePath,
		})
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Close()

	// Set the default global logger
	log.SetDefaultLogger(logger)

	log.Info("Starting up Tanpen", "version", version.GetVersion(), "build_time", version.GetBuildTime())

	if err := run(cfg); err != nil {
		log.Error("Unhandled error while running TUI", "error", err)
		os.Exit(1)
	}

	log.Info("Tanpen shutting down.  Goodbye!")
}

func run(cfg *config.Config) error {
	sessions := session.NewProvider(cfg.Session.InitData)
	_, sessionErr := sessions.Session()

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.RequestTimeout()),
		api.WithHeaderName(cfg.API.HeaderName()))
	// Video downloads are bounded by the player overlay, not by the request timeout
	streamClient := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(0),
		api.WithHeaderName(cfg.API.HeaderName()))
	repo := rest.NewVideoRepository(client, streamClient)

	haptics := session.NewHaptics(cfg.Feedback.Haptics, sessionErr == nil, os.Stderr)

	blobs := player.NewBlobServer(cfg.Stream.ListenAddr)
	if err := blobs.Start(); err != nil {
		// Browsing still works, the player overlay reports playback as unavailable
		log.Error("Unable to start local video server", "error", err)
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			log.Warn("Failed to stop local video server", "error", err)
		}
	}()

	videoPlayer := player.CreateVideoPlayer(cfg)
	defer videoPlayer.Cleanup()

	return tui.Run(models.Services{
		Session:   sessions,
		Feeds:     service.NewFeedService(repo, sessions),
		Bookmarks: service.NewBookmarkService(repo, sessions, haptics),
		Blobs:     blobs,
		Player:    videoPlayer,
		Haptics:   haptics,
	})
}
