package api

import (
	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

type errorBody struct {
	Code    errors.Code    `json:"code"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// fail writes err with the status its code maps to
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(errors.HTTPStatus(err), gin.H{
		"error": errorBody{
			Code:    errors.GetCode(err),
			Message: err.Error(),
			Meta:    errors.GetMeta(err),
		},
	})
}

// bindError turns gin binding failures into validation errors
func bindError(err error) error {
	return errors.Validationf("invalid request: %v", err)
}
