// Package devcontainers starts throwaway database containers for local
// development and integration tests.
package devcontainers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Database describes a running throwaway database container.
type Database struct {
	Container testcontainers.Container
	Network   *testcontainers.DockerNetwork

	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Options configures StartMariaDB. Zero values get sensible defaults.
type Options struct {
	Image        string
	DatabaseName string
	User         string
	Password     string
	RootPassword string
}

func (o *Options) applyDefaults() {
	if o.Image == "" {
		o.Image = getenvDefault("DB_IMAGE", "mariadb:11")
	}
	if o.DatabaseName == "" {
		o.DatabaseName = getenvDefault("DB_DATABASE", "wortquiz")
	}
	if o.User == "" {
		o.User = getenvDefault("DB_USER", "wortquiz")
	}
	if o.Password == "" {
		o.Password = getenvDefault("DB_PASSWORD", "wortquiz")
	}
	if o.RootPassword == "" {
		o.RootPassword = getenvDefault("DB_ROOT_PASSWORD", "rootpass")
	}
}

// DockerAvailable reports whether a Docker daemon is reachable.
func DockerAvailable(ctx context.Context) bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()

	_, err = cli.Ping(ctx)
	return err == nil
}

// StartMariaDB launches a MariaDB container on its own network and waits
// until the server accepts connections.
func StartMariaDB(ctx context.Context, opts Options) (*Database, error) {
	opts.applyDefaults()

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		_ = nw.Remove(ctx)
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	alias := "db-" + uuid.NewString()[:8]
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        opts.Image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": opts.RootPassword,
				"MYSQL_DATABASE":      opts.DatabaseName,
				"MYSQL_USER":          opts.User,
				"MYSQL_PASSWORD":      opts.Password,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {alias},
			},
		},
		Started: true,
	})
	if err != nil {
		_ = nw.Remove(ctx)
		return nil, fmt.Errorf("failed to start database container: %w", err)
	}

	db := &Database{
		Container: container,
		Network:   nw,
		Name:      opts.DatabaseName,
		User:      opts.User,
		Password:  opts.Password,
	}

	db.Host, err = container.Host(ctx)
	if err != nil {
		db.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		db.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}
	db.Port = mapped.Port()

	if err := db.waitReady(opts.RootPassword); err != nil {
		db.Terminate(ctx)
		return nil, err
	}

	return db, nil
}

// waitReady pings with the raw driver until the server really accepts
// connections; the listening port opens before auth is up.
func (d *Database) waitReady(rootPassword string) error {
	dsn := fmt.Sprintf("root:%s@tcp(%s:%s)/", rootPassword, d.Host, d.Port)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open admin connection: %w", err)
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database not ready after 30 seconds: %w", err)
}

// Terminate stops the container and removes its network.
func (d *Database) Terminate(ctx context.Context) {
	if d.Container != nil {
		_ = d.Container.Terminate(ctx)
	}
	if d.Network != nil {
		_ = d.Network.Remove(ctx)
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
