package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wortquiz/progression/internal/devcontainers"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a throwaway MariaDB container with the environment variables from the .env file.

Usage:

devdb [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  devdb -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	ctx := context.Background()
	if !devcontainers.DockerAvailable(ctx) {
		log.Fatal("Docker daemon is not reachable")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var db *devcontainers.Database
	go func() {
		var err error
		db, err = devcontainers.StartMariaDB(ctx, devcontainers.Options{})
		if err != nil {
			log.Fatalf("Failed to start database container: %v\n", err)
		}
		log.Printf("Database ready at %s:%s (database=%s user=%s)\n", db.Host, db.Port, db.Name, db.User)
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating database container...\n", sig)
	if db != nil {
		db.Terminate(ctx)
	}
}
