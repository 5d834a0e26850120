package searchquery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/nlstn/go-searchquery/internal/observability"
)

// ErrQueryNotFound is returned when a saved query does not exist.
var ErrQueryNotFound = errors.New("saved query not found")

// SavedQuery is a named, persisted query string. The raw text is stored
// rather than the tree: the grammar is total, so the text always re-parses,
// and it stays readable in the database.
type SavedQuery struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Raw       string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a fresh UUID when none was set.
func (s *SavedQuery) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Store persists named queries in a database.
type Store struct {
	db      *gorm.DB
	logger  *slog.Logger
	obs     *observability.Config
	obsOpts []observability.Option
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the structured logger used by the store.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithStoreTracerProvider enables OpenTelemetry tracing of store operations,
// including GORM callback spans for the underlying database statements.
func WithStoreTracerProvider(tp trace.TracerProvider) StoreOption {
	return func(s *Store) {
		s.obsOpts = append(s.obsOpts, observability.WithTracerProvider(tp))
	}
}

// WithStoreMeterProvider enables OpenTelemetry metrics for store operations.
func WithStoreMeterProvider(mp metric.MeterProvider) StoreOption {
	return func(s *Store) {
		s.obsOpts = append(s.obsOpts, observability.WithMeterProvider(mp))
	}
}

// NewStore creates a store on the given database connection, migrating the
// saved-query table.
func NewStore(db *gorm.DB, opts ...StoreOption) (*Store, error) {
	s := &Store{
		db:     db,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.obs = observability.NewConfig(s.obsOpts...)

	if err := db.AutoMigrate(&SavedQuery{}); err != nil {
		return nil, fmt.Errorf("migrating saved query table: %w", err)
	}
	if err := observability.RegisterGORMCallbacks(db, s.obs); err != nil {
		return nil, fmt.Errorf("registering gorm callbacks: %w", err)
	}
	return s, nil
}

// Save upserts a named query and returns the stored row. The raw string is
// accepted as-is; parsing is total, so there is nothing to validate.
func (s *Store) Save(ctx context.Context, name, raw string) (*SavedQuery, error) {
	_, span := s.obs.Tracer().StartStore(ctx, "save", name)
	defer span.End()
	start := time.Now()
	defer func() { s.obs.Metrics().RecordStore(ctx, "save", time.Since(start)) }()

	var saved SavedQuery
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&saved).Error
	switch {
	case err == nil:
		saved.Raw = raw
		if err := s.db.WithContext(ctx).Save(&saved).Error; err != nil {
			observability.RecordError(span, err)
			return nil, fmt.Errorf("updating saved query %q: %w", name, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		saved = SavedQuery{Name: name, Raw: raw}
		if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
			observability.RecordError(span, err)
			return nil, fmt.Errorf("creating saved query %q: %w", name, err)
		}
	default:
		observability.RecordError(span, err)
		return nil, fmt.Errorf("looking up saved query %q: %w", name, err)
	}

	s.logger.DebugContext(ctx, "saved query", "name", name, "id", saved.ID)
	return &saved, nil
}

// Get loads a saved query by name and parses it.
func (s *Store) Get(ctx context.Context, name string) (*Query, error) {
	_, span := s.obs.Tracer().StartStore(ctx, "get", name)
	defer span.End()
	start := time.Now()
	defer func() { s.obs.Metrics().RecordStore(ctx, "get", time.Since(start)) }()

	var saved SavedQuery
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&saved).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrQueryNotFound, name)
		}
		observability.RecordError(span, err)
		return nil, fmt.Errorf("loading saved query %q: %w", name, err)
	}
	return Parse(saved.Raw), nil
}

// List returns all saved queries ordered by name.
func (s *Store) List(ctx context.Context) ([]SavedQuery, error) {
	_, span := s.obs.Tracer().StartStore(ctx, "list", "")
	defer span.End()
	start := time.Now()
	defer func() { s.obs.Metrics().RecordStore(ctx, "list", time.Since(start)) }()

	var all []SavedQuery
	if err := s.db.WithContext(ctx).Order("name").Find(&all).Error; err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("listing saved queries: %w", err)
	}
	return all, nil
}

// Delete removes a saved query by name.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, span := s.obs.Tracer().StartStore(ctx, "delete", name)
	defer span.End()
	start := time.Now()
	defer func() { s.obs.Metrics().RecordStore(ctx, "delete", time.Since(start)) }()

	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&SavedQuery{})
	if res.Error != nil {
		observability.RecordError(span, res.Error)
		return fmt.Errorf("deleting saved query %q: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %q", ErrQueryNotFound, name)
	}
	s.logger.DebugContext(ctx, "deleted query", "name", name)
	return nil
}
