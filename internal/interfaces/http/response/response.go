package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "revebot.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Validation failures carry their per-field
// messages; everything else goes through the AppError envelope.
func Error(c *gin.Context, err error) {
	var fieldErrs domainerrors.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "The given data was invalid.",
			"errors":  fieldErrs,
		})
		return
	}

	if errors.Is(err, domainerrors.ErrMalformedTiers) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "The given data was invalid.",
			"errors":  gin.H{"tiers": "The tiers payload must contain exactly 3 conversation tiers."},
		})
		return
	}

	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		if errors.Is(err, domainerrors.ErrNotFound) {
			appErr = domainerrors.NotFound("resource not found")
		} else {
			appErr = domainerrors.InternalError(err)
		}
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
