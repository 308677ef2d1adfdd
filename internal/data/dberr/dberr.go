package dberr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/tripcraft-backend/internal/pkg/errors"
)

// Map tags a gorm/driver error with the shared sentinels so services can
// branch on errors.Is. Unknown errors are wrapped with op only.
func Map(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w: %w", op, pkgerrors.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w: %w", op, pkgerrors.ErrConflict, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w: %w", op, pkgerrors.ErrConflict, err)
		case "22P02": // invalid_text_representation
			return fmt.Errorf("%s: %w: %w", op, pkgerrors.ErrInvalidArgument, err)
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint failed") {
		return fmt.Errorf("%s: %w: %w", op, pkgerrors.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
