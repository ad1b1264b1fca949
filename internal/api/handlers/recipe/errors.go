package recipe

import (
	"context"
	"errors"
	"net/http"

	"recipe-parser/internal/core/recipe"
	"recipe-parser/internal/core/source"
	"recipe-parser/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// toAPIError 將領域錯誤對應到 API 錯誤
func toAPIError(err error) *common.CustomError {
	var ce *common.CustomError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return common.ErrRequestTooLarge.Wrap(err)
	case errors.As(err, &ce):
		return ce
	case common.IsValidationError(err):
		return common.ErrInvalidRequest.Wrap(err)
	case errors.Is(err, recipe.ErrInvalidInput):
		return common.ErrInvalidInput.Wrap(err)
	case errors.Is(err, source.ErrInvalidURL):
		return common.ErrInvalidRequest.Wrap(err)
	case errors.Is(err, source.ErrNoRecipe):
		return common.ErrRecipeNotFound.Wrap(err)
	case errors.Is(err, source.ErrFetch):
		return common.ErrSourceUnavailable.Wrap(err)
	case errors.Is(err, context.DeadlineExceeded):
		return common.ErrGatewayTimeout.Wrap(err)
	default:
		return common.ErrInternalError.Wrap(err)
	}
}

// respondError 寫出錯誤響應
func (h *Handler) respondError(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	status, resp := common.ToResponse(apiErr, h.debug)

	if status >= 500 {
		common.LogError("請求處理失敗",
			zap.Error(err),
			zap.String("code", apiErr.Code),
			zap.String("request_id", requestid.Get(c)),
		)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}
