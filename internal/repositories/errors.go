package repositories

import (
	stderrors "errors"

	"github.com/anonto42/nano-social/backend/pkg/errors"
	"gorm.io/gorm"
)

// translate maps store errors onto the application taxonomy. Duplicate-key
// violations become CONFLICT so that concurrent writers racing on a unique
// index get a typed error instead of a driver error.
func translate(err error, notFound, conflict, op string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return errors.NotFound(notFound)
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(err, errors.ErrCodeConflict, conflict)
	default:
		return errors.Internal(err, op)
	}
}

type idCount struct {
	ID    uint
	Count int64
}

func countsByID(rows []idCount) map[uint]int64 {
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.ID] += r.Count
	}
	return out
}
