// Package testutil starts throw-away infrastructure for integration tests.
package testutil

import (
	"fmt"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"gorm.io/gorm"

	"github.com/vietanh2810/event-registration-api/internal/db"
	"github.com/vietanh2810/event-registration-api/internal/repository/dao"
)

// Postgres is a migrated database running in a disposable container.
type Postgres struct {
	DB *gorm.DB

	pool     *dockertest.Pool
	resource *dockertest.Resource
}

// StartPostgres runs postgres in Docker and migrates the schema. It fails
// when Docker is not reachable; callers decide whether to skip.
func StartPostgres() (*Postgres, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("dockertest.NewPool -> %w", err)
	}
	if err = pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("pool.Client.Ping -> %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=eventreg",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=eventreg",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("pool.RunWithOptions -> %w", err)
	}
	_ = resource.Expire(300)

	url := fmt.Sprintf("postgres://eventreg:secret@%s/eventreg?sslmode=disable", resource.GetHostPort("5432/tcp"))

	pg := &Postgres{pool: pool, resource: resource}
	pool.MaxWait = 90 * time.Second
	err = pool.Retry(func() error {
		gdb, err := db.OpenPostgresWithURL(url)
		if err != nil {
			return err
		}
		if err = db.Ping(gdb); err != nil {
			return err
		}
		pg.DB = gdb
		return nil
	})
	if err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("pool.Retry -> %w", err)
	}

	if err = dao.InitTables(pg.DB); err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	return pg, nil
}

// Reset empties all tables.
func (p *Postgres) Reset() error {
	return dao.TruncateTables(p.DB)
}

func (p *Postgres) Close() error {
	if sqlDB, err := p.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	return p.pool.Purge(p.resource)
}
