package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemongo "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// RunMigrations applies the JSON command migrations in dir (the unique email index).
func RunMigrations(ctx context.Context, c *Client, dir string, logger *logrus.Logger) error {
	client, err := c.Mongo(ctx)
	if err != nil {
		return err
	}
	driver, err := migratemongo.WithInstance(client, &migratemongo.Config{DatabaseName: c.DatabaseName()})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "mongodb", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
