// Package pgtest starts a throwaway Postgres container for store tests.
package pgtest

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	user     = "agentfriend"
	password = "agentfriend"
	database = "agentfriend_test"
)

// Container is a running Postgres instance reachable from the host.
type Container struct {
	tc   testcontainers.Container
	host string
	port string
}

// Start launches postgres:16 and waits until it accepts connections.
func Start(ctx context.Context) (*Container, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       database,
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": password,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
		),
	}

	tc, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := tc.Host(ctx)
	if err != nil {
		tc.Terminate(ctx)
		return nil, fmt.Errorf("resolve host: %w", err)
	}
	mappedPort, err := tc.MappedPort(ctx, "5432")
	if err != nil {
		tc.Terminate(ctx)
		return nil, fmt.Errorf("resolve port: %w", err)
	}

	return &Container{tc: tc, host: host, port: mappedPort.Port()}, nil
}

func (c *Container) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, c.host, c.port, database)
}

func (c *Container) Terminate(ctx context.Context) error {
	return c.tc.Terminate(ctx)
}
