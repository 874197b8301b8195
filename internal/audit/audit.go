package audit

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Entry struct {
	UserID     int64
	Action     string
	EntityType string
	EntityID   *int64
	IP         string
}

// Write records an audit entry. A nil pool is a no-op so callers do not need
// to care whether auditing is configured.
func Write(ctx context.Context, db *pgxpool.Pool, e Entry) error {
	if db == nil {
		return nil
	}

	_, err := db.Exec(ctx, `
INSERT INTO audit_logs (user_id, action, entity_type, entity_id, ip)
VALUES ($1, $2, $3, $4, $5)
`, e.UserID, e.Action, e.EntityType, e.EntityID, e.IP)

	return err
}

// Record is Write for call sites that must not fail on audit errors; it logs
// and moves on.
func Record(ctx context.Context, db *pgxpool.Pool, e Entry) {
	if err := Write(ctx, db, e); err != nil {
		log.Printf("audit: %s %s: %v", e.Action, e.EntityType, err)
	}
}
