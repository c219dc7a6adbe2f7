package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DylanGreen12/simple-http-server/internal/response"
)

// Config is the process-wide server configuration. It is populated once at
// startup and read-only afterwards; every connection handler shares it by
// reference.
type Config struct {
	// Addr is the TCP bind address.
	Addr string
	// Root is the directory all servable files and custom error pages
	// live under.
	Root string
	// Protocol is stamped on every response status line. Fixed per
	// deployment, never taken from the request.
	Protocol string
}

func Default() *Config {
	return &Config{
		Addr:     "127.0.0.1:8080",
		Protocol: response.DefaultProtocol,
	}
}

// DiscoverRoot picks the directory to serve when none was given: a "pages"
// directory next to the running executable, else "pages" under the current
// working directory.
func DiscoverRoot() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), "pages")
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return filepath.Join(wd, "pages")
}

// CheckRoot verifies the root directory exists before the listener starts.
func (c *Config) CheckRoot() error {
	fi, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("root directory does not exist: %s", c.Root)
	}
	if !fi.IsDir() {
		return fmt.Errorf("root is not a directory: %s", c.Root)
	}
	return nil
}
