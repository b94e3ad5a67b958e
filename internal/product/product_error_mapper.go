package product

import (
	"errors"
	"strings"

	producterrors "go-fieldforce/internal/product/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return producterrors.ErrProductNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_product_sku" {
			return producterrors.ErrSKUTaken
		}
	}

	if strings.Contains(err.Error(), "uq_product_sku") {
		return producterrors.ErrSKUTaken
	}

	return err
}
