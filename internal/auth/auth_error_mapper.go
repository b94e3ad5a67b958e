package auth

import (
	"errors"
	"strings"

	autherrors "go-fieldforce/internal/auth/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRegistrationError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_company_slug":
				return autherrors.ErrSlugTaken
			case "uq_user_email":
				return autherrors.ErrEmailAlreadyRegistered
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_company_slug") {
		return autherrors.ErrSlugTaken
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_user_email") {
		return autherrors.ErrEmailAlreadyRegistered
	}

	return err
}
