// Package postgres implements the entity store adapter on PostgreSQL. The
// session repository additionally carries the constrained native-query
// contract (at most one inequality predicate) consumed by the query planner.
package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

// storeErr maps connection-level failures to domain.ErrUnavailable so
// callers on the synchronous path can treat them as retryable. Other errors
// pass through unchanged.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return err
}
