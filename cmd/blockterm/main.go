package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/qnkhuat/blockterm/pkg"
	"github.com/qnkhuat/blockterm/pkg/config"
	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/gui"
	"github.com/qnkhuat/blockterm/pkg/score"
	"github.com/qnkhuat/blockterm/pkg/store"
	"github.com/qnkhuat/blockterm/pkg/tray"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	eventQueueSize = 64
	storeTimeout   = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "blockterm.yaml", "path to config file")
	envPath := flag.String("env", ".env", "path to .env file")
	nick := flag.String("nick", "", "player nickname")
	logPath := flag.String("log", "", "path to log file")
	driver := flag.String("store", "", "best score store: memory, file, redis or postgres")
	seed := flag.Int64("seed", 0, "tray seed, 0 for random")
	theme := flag.String("theme", "", "color theme")
	events := flag.String("events", "", "append game events to this file")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "blockterm needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = cfg.Apply(config.Flags{
		LogPath: *logPath,
		Store:   *driver,
		Seed:    *seed,
		Theme:   *theme,
		Events:  *events,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	// ssh players arrive with --nick and keep a record of their own. Local
	// players are keyed by login so a generated nick still finds its best.
	owner := *nick
	if *nick == "" {
		login := os.Getenv("USER")
		*nick = pkg.Nick(login)
		owner = pkg.StoreKey(login)
	}

	logger, err := pkg.InitLog(cfg.Log.Path, cfg.Log.Level, "client")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("new client", zap.String("nick", *nick), zap.Int64("seed", cfg.Seed), zap.String("store", cfg.Store.Driver))

	th, err := gui.LookupTheme(cfg.Theme, cfg.Themes)
	if err != nil {
		logger.Warn("falling back to basic theme", zap.Error(err))
		th = gui.ThemeBasic
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	best, closeStore, err := store.Open(ctx, cfg.Store, owner)
	cancel()
	if err != nil {
		// Best score starts at 0.
		logger.Warn("best score store unavailable", zap.Error(err))
	}
	defer closeStore()

	var rec *event.Recorder
	if cfg.Events != "" {
		f, err := os.OpenFile(cfg.Events, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			logger.Warn("failed to open event log", zap.String("path", cfg.Events), zap.Error(err))
		} else {
			defer f.Close()
			rec = event.NewRecorder(f)
		}
	}

	eventCh := make(chan event.Event, eventQueueSize)
	session := game.New(tray.New(cfg.Seed), score.NewTracker(best, logger), eventCh, logger)

	cl := pkg.NewClient(session, th, *nick, logger)

	handled := make(chan struct{})
	go func() {
		cl.HandleEvents(eventCh, rec)
		close(handled)
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigc
		cl.App.Stop()
	}()

	runErr := cl.Run()

	close(eventCh)
	<-handled

	if runErr != nil {
		logger.Error("client stopped", zap.Error(runErr))
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}

	summary(session.Snapshot(), cl.Clock.String())
}

func summary(snap game.Snapshot, elapsed string) {
	title := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgHiBlack)
	value := color.New(color.FgWhite, color.Bold)

	title.Println("blockterm")
	label.Print("  score ")
	value.Println(snap.Score)
	label.Print("  best  ")
	if snap.NewBest {
		color.New(color.FgYellow, color.Bold).Printf("%d new best!\n", snap.Best)
	} else {
		value.Println(snap.Best)
	}
	label.Print("  time  ")
	value.Println(elapsed)
}
