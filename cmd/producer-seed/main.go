package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"producer-payout.backend/internal/config"
	"producer-payout.backend/internal/domain/entities"
	domainerrors "producer-payout.backend/internal/domain/errors"
	"producer-payout.backend/internal/infrastructure/models"
	"producer-payout.backend/internal/infrastructure/mongostore"
	"producer-payout.backend/internal/infrastructure/repositories"
)

var openSeedDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{TranslateError: true})
}

type producerCreator interface {
	Create(ctx context.Context, producer *entities.Producer) error
}

type producerSeedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(ctx context.Context, cfg *config.Config) (producerCreator, io.Closer, error)
	out     io.Writer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func defaultProducerSeedDeps() producerSeedDeps {
	return producerSeedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(ctx context.Context, cfg *config.Config) (producerCreator, io.Closer, error) {
			if cfg.Store.Driver == config.StoreDriverMongo {
				client, err := mongostore.Connect(ctx, cfg.Mongo.URI)
				if err != nil {
					return nil, nil, err
				}
				coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
				return mongostore.NewProducerStore(coll), closerFunc(func() error {
					return client.Disconnect(context.Background())
				}), nil
			}

			db, err := openSeedDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			if err := db.AutoMigrate(&models.Producer{}); err != nil {
				return nil, nil, fmt.Errorf("failed to migrate producers: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return repositories.NewProducerRepository(db), sqlDB, nil
		},
		out: os.Stdout,
	}
}

func parseProducerIDs(raw string) ([]string, error) {
	var ids []string
	seen := map[string]bool{}
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("--ids is required")
	}
	return ids, nil
}

func runProducerSeed(args []string, deps producerSeedDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		deps.prepare = defaultProducerSeedDeps().prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("producer-seed", flag.ContinueOnError)
	idsFlag := fs.String("ids", "", "comma separated producer ids (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids, err := parseProducerIDs(*idsFlag)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()
	store, closer, err := deps.prepare(ctx, deps.loadCfg())
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	created := 0
	for _, id := range ids {
		err := store.Create(ctx, &entities.Producer{ProducerID: id})
		switch {
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			_, _ = fmt.Fprintf(deps.out, "exists %s\n", id)
		case err != nil:
			return fmt.Errorf("failed creating producer %s: %w", id, err)
		default:
			created++
			_, _ = fmt.Fprintf(deps.out, "created %s\n", id)
		}
	}
	_, _ = fmt.Fprintf(deps.out, "created=%d skipped=%d\n", created, len(ids)-created)
	return nil
}

func main() {
	if err := runProducerSeed(os.Args[1:], defaultProducerSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
