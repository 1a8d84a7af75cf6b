package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
)

type promptRequest struct {
	Traits *traits.SelectedTraits `json:"traits" binding:"required"`
}

func (h *Handler) randomTraits(c *gin.Context) {
	strat := h.strategies.Current()
	body := gin.H{
		"traits":   strat.SelectTraits(),
		"strategy": strat.Name(),
	}
	if p := strat.Period(); p != nil {
		body["periodId"] = p.ID
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) prompt(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}

	result, err := h.strategies.Current().BuildPrompt(req.Traits)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
