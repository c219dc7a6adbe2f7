package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/DylanGreen12/simple-http-server/internal/config"
	"github.com/DylanGreen12/simple-http-server/internal/response"
	"github.com/DylanGreen12/simple-http-server/internal/server"
	"github.com/DylanGreen12/simple-http-server/internal/site"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "address to bind")
	root := flag.String("root", "", "directory to serve (default: pages next to the executable)")
	proto := flag.String("proto", response.DefaultProtocol, "protocol version for status lines")
	flag.Parse()

	logger := log.New(os.Stdout, "http ", log.LstdFlags)

	cfg := config.Default()
	cfg.Addr = *addr
	cfg.Protocol = *proto
	cfg.Root = *root
	if cfg.Root == "" {
		cfg.Root = config.DiscoverRoot()
	}

	if err := cfg.CheckRoot(); err != nil {
		logger.Printf("%v", err)
		logger.Fatalf("create the directory and add web files before starting")
	}

	st := site.New(osfs.New(cfg.Root), logger)

	srv, err := server.Serve(cfg, st, logger)
	if err != nil {
		logger.Fatalf("bind %s: %v", cfg.Addr, err)
	}
	logger.Printf("server running on http://%s", cfg.Addr)
	logger.Printf("serving files from %s", cfg.Root)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.Printf("received signal %s, exiting", sig)
	srv.Close()
}
