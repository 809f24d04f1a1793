// main.go
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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/jam-build-crm/internal/database"
	"github.com/localnerve/jam-build-crm/internal/database/dbtest"
	"github.com/sirupsen/logrus"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "db", "", "postgres or mariadb (default DB_TYPE, then postgres)")
	flag.Parse()

	usage := `
Run a throwaway CRM database container, migrated and ready for the server.

Usage:

devdb [-h] [-f ENV_FILE_PATH] [-db postgres|mariadb]

ENV_FILE_PATH: path to the .env file

example
  devdb -f /path/to/something/.env -db mariadb
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		logrus.Infof("Loading environment variables from %s", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			logrus.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	if dbType == "" {
		dbType = os.Getenv("DB_TYPE")
	}
	opts := dbtest.DefaultOptions(dbType)
	if image := os.Getenv("DB_IMAGE"); image != "" {
		opts.Image = image
	}
	opts.Tmpfs = false

	ctx := context.Background()
	container, err := dbtest.Start(ctx, opts)
	if err != nil {
		logrus.Fatalf("Failed to start database container: %v", err)
	}

	db, err := database.Connect(container.Config)
	if err != nil {
		_ = container.Terminate(ctx)
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = container.Terminate(ctx)
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	_ = database.Close(db)

	cfg := container.Config
	fmt.Printf("DB_TYPE=%s\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_USER=%s\nDB_PASSWORD=%s\n",
		cfg.DBType, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBUser, cfg.DBPassword)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigs
	logrus.Infof("Received signal: %v, terminating database container...", sig)
	if err := container.Terminate(ctx); err != nil {
		logrus.Errorf("Failed to terminate database container: %v", err)
	}
}
