package staff

import (
	"errors"
	"strings"

	stafferrors "go-fieldforce/internal/staff/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stafferrors.ErrStaffNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_company_user" {
			return stafferrors.ErrMembershipExists
		}
	}

	if strings.Contains(err.Error(), "uq_company_user") {
		return stafferrors.ErrMembershipExists
	}

	return err
}
