package shop

import (
	"errors"
	"strings"

	shoperrors "go-fieldforce/internal/shop/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shoperrors.ErrShopNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_shop_code" {
			return shoperrors.ErrShopCodeTaken
		}
	}

	if strings.Contains(err.Error(), "uq_shop_code") {
		return shoperrors.ErrShopCodeTaken
	}

	return err
}
