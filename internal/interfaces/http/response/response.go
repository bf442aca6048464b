package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Domain sentinels map to their HTTP status;
// anything unrecognized becomes a 500 without leaking internals.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = fromSentinel(err)
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

func fromSentinel(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidAmount),
		errors.Is(err, domainerrors.ErrInvalidAddress),
		errors.Is(err, domainerrors.ErrInvalidFeeType),
		errors.Is(err, domainerrors.ErrInvalidFeeConfig),
		errors.Is(err, domainerrors.ErrInsufficientBalance),
		errors.Is(err, domainerrors.ErrUserRejected):
		return domainerrors.BadRequest(err.Error(), err)
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.NewAppError(http.StatusForbidden, err.Error(), err)
	case errors.Is(err, domainerrors.ErrContractPaused),
		errors.Is(err, domainerrors.ErrBackingViolation),
		errors.Is(err, domainerrors.ErrInvalidTransition),
		errors.Is(err, domainerrors.ErrAlreadyTerminal):
		return domainerrors.Conflict(err.Error(), err)
	case errors.Is(err, domainerrors.ErrSignerUnavailable),
		errors.Is(err, domainerrors.ErrChainSubmission),
		errors.Is(err, domainerrors.ErrStatusCheck):
		return domainerrors.NewAppError(http.StatusBadGateway, err.Error(), err)
	case errors.Is(err, domainerrors.ErrTimeout):
		return domainerrors.NewAppError(http.StatusGatewayTimeout, err.Error(), err)
	}
	return domainerrors.InternalError(err)
}
