package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/respkit/respd/cmd"
	"github.com/respkit/respd/config"
	"github.com/respkit/respd/log"
	"github.com/respkit/respd/node"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		addr       = flag.String("addr", "", "listen (or connect) address, overrides config")
		cli        = flag.Bool("cli", false, "run the interactive client instead of the server")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	if *cli {
		if err := cmd.RunCLI(cfg.Addr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := log.InitLogger(cfg.Log.Level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Logger.Sync()

	if err := node.NewServer(cfg.Addr).Run(); err != nil {
		log.Logger.Fatal("server exited", zap.Error(err))
	}
}
