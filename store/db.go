package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/legit-games/catalog-service/errors"
	"github.com/legit-games/catalog-service/models"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects gorm to driver ("postgres" or "sqlite") and routes its logs
// through logger. Driver errors are translated, so unique and foreign key
// violations surface as gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func Open(driver, dsn string, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if logger == nil {
		logger = slog.Default()
	}

	gormLogger := slogGorm.New(
		slogGorm.WithHandler(logger.With("component", "gorm").Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.SetLogLevel(slogGorm.DefaultLogType, slog.LevelDebug),
		slogGorm.WithContextValue(RequestIDAttr, RequestIDAttr),
	)
	return gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
}

// RequestIDAttr names the request id both as a log attribute and as the
// context key slog-gorm looks up. slog-gorm only reads plain string keys.
const RequestIDAttr = "request_id"

// WithRequestID tags ctx so SQL log records carry the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDAttr, id)
}

// AutoMigrate creates the schema from the entities. Postgres deployments use
// the goose migrations instead; this serves sqlite and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Role{}, &models.User{}, &models.Category{}, &models.Product{}, &models.Client{})
}

// translate maps gorm failures onto the resource error kinds.
func translate(err error, notFound string, args ...interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.NotFound(notFound, args...)
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrDuplicatedKey):
		return &errors.Error{Kind: errors.ErrIntegrityViolation, Message: "Integrity violation"}
	default:
		return err
	}
}
