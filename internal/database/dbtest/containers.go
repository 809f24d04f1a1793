// containers.go
//
// A multi-tenant CRM data service for customers, deals and tasks
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-crm.
// jam-build-crm is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-crm is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-crm.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package dbtest starts throwaway database containers for integration tests
// and the local development database command.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/jam-build-crm/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Options describes the database container to start
type Options struct {
	DBType   string // postgres or mariadb/mysql
	Image    string
	Database string
	User     string
	Password string
	// Tmpfs keeps the data directory in memory
	Tmpfs bool
}

// Container is a running database and the config needed to reach it
type Container struct {
	testcontainers.Container
	Config *config.Config
}

// DefaultOptions returns the options for dbType with stock images and credentials
func DefaultOptions(dbType string) Options {
	opts := Options{
		DBType:   dbType,
		Database: "crm",
		User:     "crm_user",
		Password: "crm_password",
		Tmpfs:    true,
	}
	switch dbType {
	case "mysql", "mariadb":
		opts.Image = "mariadb:11"
	default:
		opts.DBType = "postgres"
		opts.Image = "postgres:17-alpine"
	}
	return opts
}

func (o Options) internalPort() string {
	if o.isMySQL() {
		return "3306"
	}
	return "5432"
}

func (o Options) isMySQL() bool {
	return o.DBType == "mysql" || o.DBType == "mariadb"
}

func (o Options) env() map[string]string {
	if o.isMySQL() {
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": o.Password,
			"MYSQL_DATABASE":      o.Database,
			"MYSQL_USER":          o.User,
			"MYSQL_PASSWORD":      o.Password,
		}
	}
	return map[string]string{
		"POSTGRES_PASSWORD": o.Password,
		"POSTGRES_USER":     o.User,
		"POSTGRES_DB":       o.Database,
	}
}

func (o Options) dataDir() string {
	if o.isMySQL() {
		return "/var/lib/mysql"
	}
	return "/var/lib/postgresql/data"
}

// Start launches the database container and waits until it accepts connections
func Start(ctx context.Context, opts Options) (*Container, error) {
	tcpPort, err := nat.NewPort("tcp", opts.internalPort())
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	req := testcontainers.ContainerRequest{
		Image:        opts.Image,
		ExposedPorts: []string{string(tcpPort)},
		Env:          opts.env(),
		WaitingFor:   wait.ForListeningPort(tcpPort).WithStartupTimeout(90 * time.Second),
		HostConfigModifier: func(hostConfig *container.HostConfig) {
			if opts.Tmpfs {
				hostConfig.Tmpfs = map[string]string{opts.dataDir(): "rw"}
			}
		},
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", opts.DBType, err)
	}

	host, err := dbContainer.Host(ctx)
	if err != nil {
		_ = dbContainer.Terminate(ctx)
		return nil, err
	}
	mapped, err := dbContainer.MappedPort(ctx, tcpPort)
	if err != nil {
		_ = dbContainer.Terminate(ctx)
		return nil, err
	}

	cfg := &config.Config{
		DBType:            opts.DBType,
		DBHost:            host,
		DBPort:            mapped.Port(),
		DBDatabase:        opts.Database,
		DBUser:            opts.User,
		DBPassword:        opts.Password,
		DBConnectionLimit: 4,
		DBLogLevel:        "warn",
	}

	if opts.isMySQL() {
		// MariaDB opens its port before the init scripts finish
		if err := waitForMySQL(ctx, cfg); err != nil {
			_ = dbContainer.Terminate(ctx)
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"db_type": cfg.DBType,
		"host":    cfg.DBHost,
		"port":    cfg.DBPort,
	}).Info("Database container started")

	return &Container{Container: dbContainer, Config: cfg}, nil
}

func waitForMySQL(ctx context.Context, cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBDatabase)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		time.Sleep(time.Second)
	}
	return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
}

// Terminate stops and removes the container
func (c *Container) Terminate(ctx context.Context) error {
	return c.Container.Terminate(ctx)
}
