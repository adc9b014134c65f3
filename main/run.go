package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xtls/xrelay/app/log"
	"github.com/xtls/xrelay/common"
	"github.com/xtls/xrelay/common/crypto"
	"github.com/xtls/xrelay/common/errors"
	"github.com/xtls/xrelay/infra/conf"
	"github.com/xtls/xrelay/infra/conf/serial"
	"github.com/xtls/xrelay/proxy/tunnel"
	"github.com/xtls/xrelay/transport/internet"
)

const (
	exitOK    = 0
	exitError = 1
	// Configuration error. Exit with a special value to prevent systemd from restarting.
	exitConfig = 23
)

func execute(args []string) int {
	opts, usage, err := parseFlags(args)
	if err != nil {
		return fatal(exitConfig, usage+err.Error())
	}
	if opts.help {
		fmt.Print(usage)
		return exitOK
	}

	if opts.genKey != "" {
		if err := writeKeyFile(opts.genKey); err != nil {
			return fatal(exitError, "Failed to generate key:", err)
		}
		return exitOK
	}

	config, err := loadConfig(opts)
	if err != nil {
		return fatal(exitConfig, "Failed to load config:", err)
	}

	console := log.LogType_Console
	if !config.IsReverse() {
		// stdout carries the relayed data
		console = log.LogType_Stderr
	}
	logConfig, err := config.LogConfig.Build(console)
	if err != nil {
		return fatal(exitConfig, "Failed to load config:", err)
	}
	logger, err := log.New(context.Background(), logConfig)
	if err != nil {
		return fatal(exitConfig, "Failed to start logger:", err)
	}
	defer logger.Close()

	tunnelConfig, err := config.Build()
	if err != nil {
		return fatal(exitConfig, "Failed to load config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.IsReverse() {
		err = serve(ctx, tunnelConfig)
	} else {
		err = tunnel.NewClient(tunnelConfig).Run(ctx, &tunnel.Stdio{In: os.Stdin, Out: os.Stdout})
	}
	if err != nil {
		errors.LogErrorInner(ctx, err, "relay stopped")
		return exitError
	}
	return exitOK
}

func loadConfig(opts *options) (*conf.Config, error) {
	config := new(conf.Config)
	if opts.configFile != "" {
		c, err := serial.LoadConfigFile(opts.configFile, opts.format)
		if err != nil {
			return nil, err
		}
		config = c
	}
	config.Override(opts.override())
	return config, nil
}

func serve(ctx context.Context, config *tunnel.Config) error {
	l, err := internet.ListenSystem(ctx, config.Listen, config.SocketConfig)
	if err != nil {
		return err
	}
	errors.LogWarning(ctx, "listening on ", config.Listen, ", relaying to ", config.Destination)
	return tunnel.NewServer(config).Serve(ctx, l)
}

// writeKeyFile writes a new raw key. An existing file is never overwritten.
func writeKeyFile(path string) error {
	key, err := crypto.GenerateKey(nil)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return errors.New("failed to create key file").Base(err)
	}
	if _, err := file.Write(key); err != nil {
		file.Close()
		return errors.New("failed to write key file").Base(err)
	}
	return common.Close(file)
}
