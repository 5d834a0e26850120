package observability

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	gormSpanKey  = "searchquery:gorm:span"
	gormStartKey = "searchquery:gorm:start"
)

// RegisterGORMCallbacks registers GORM callbacks that trace the saved-query
// store's database operations. Call after GORM is initialized and
// observability is configured; with no TracerProvider this is a no-op.
func RegisterGORMCallbacks(db *gorm.DB, cfg *Config) error {
	if cfg == nil || cfg.TracerProvider == nil {
		return nil
	}

	tracer := cfg.Tracer()

	if err := db.Callback().Query().Before("gorm:query").Register("searchquery:before_query", beforeDB(tracer, "query")); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("searchquery:after_query", afterDB); err != nil {
		return err
	}

	if err := db.Callback().Create().Before("gorm:create").Register("searchquery:before_create", beforeDB(tracer, "create")); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("searchquery:after_create", afterDB); err != nil {
		return err
	}

	if err := db.Callback().Update().Before("gorm:update").Register("searchquery:before_update", beforeDB(tracer, "update")); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("searchquery:after_update", afterDB); err != nil {
		return err
	}

	if err := db.Callback().Delete().Before("gorm:delete").Register("searchquery:before_delete", beforeDB(tracer, "delete")); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("searchquery:after_delete", afterDB); err != nil {
		return err
	}

	return nil
}

func beforeDB(tracer *Tracer, op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx, span := tracer.StartSpan(db.Statement.Context, "searchquery.db."+op,
			attribute.String("db.operation", op),
		)
		db.Statement.Context = ctx
		db.InstanceSet(gormSpanKey, span)
		db.InstanceSet(gormStartKey, time.Now())
	}
}

func afterDB(db *gorm.DB) {
	v, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, ok := v.(trace.Span)
	if !ok {
		return
	}
	if start, ok := db.InstanceGet(gormStartKey); ok {
		if t, ok := start.(time.Time); ok {
			span.SetAttributes(attribute.Float64("db.duration_ms", float64(time.Since(t).Microseconds())/1000.0))
		}
	}
	RecordError(span, db.Error)
	span.End()
}
