package category

import (
	"errors"

	"github.com/go-restaurant-api/internal/domain"
)

// notFound swaps a store-level not-found for a client-facing message.
func notFound(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewError(domain.ErrNotFound, msg)
	}
	return err
}
