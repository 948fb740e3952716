package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gliderlabs/ssh"
	"github.com/qnkhuat/blockterm/pkg"
	"github.com/qnkhuat/blockterm/pkg/config"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "blockterm.yaml", "path to config file")
	envPath := flag.String("env", ".env", "path to .env file")
	addr := flag.String("addr", "", "ssh listen address")
	client := flag.String("client", "", "path to the blockterm client binary")
	hostKey := flag.String("hostkey", "", "path to the ssh host key")
	logPath := flag.String("log", "", "path to log file")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *client != "" {
		cfg.Server.Client = *client
	}
	if *hostKey != "" {
		cfg.Server.HostKey = *hostKey
	}
	if *logPath != "" {
		cfg.Log.Path = *logPath
	}

	logger, err := pkg.InitLog(cfg.Log.Path, cfg.Log.Level, "server")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	s, err := pkg.NewServer(cfg.Server, logger)
	if err != nil {
		logger.Error("failed to create server", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("addr", cfg.Server.Addr), zap.String("client", cfg.Server.Client))
	color.New(color.FgGreen, color.Bold).Print("blockterm ")
	fmt.Printf("listening on %s, connect with ", cfg.Server.Addr)
	color.New(color.FgCyan).Printf("ssh -p %s localhost\n", port(cfg.Server.Addr))

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	logger.Info("shutting down", zap.Strings("players", s.Players()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
		s.Close()
	}
}

func port(addr string) string {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return p
}
