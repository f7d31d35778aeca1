package server

import (
	"context"
	"errors"

	"github.com/poiesic/medcode/storage"
)

// validateCode reports whether the code is a member of the stored catalog.
// Membership is the validation authority here: a suggestion always passes
// since it came from the catalog, while arbitrary client-checked codes may
// not.
func validateCode(ctx context.Context, repo storage.CodeRepository, code string) ValidationStatus {
	_, err := repo.GetCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ValidationStatus{Valid: false, Message: "Code requires review."}
		}
		return ValidationStatus{Valid: false, Message: "Validation unavailable."}
	}
	return ValidationStatus{Valid: true, Message: "Valid catalog code."}
}
