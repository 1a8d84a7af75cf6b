package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
)

type previewRequest struct {
	Traits *traits.SelectedTraits `json:"traits"`
}

func (h *Handler) listPeriods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"periods": h.periods.All()})
}

func (h *Handler) currentPeriod(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"period": h.periods.Current(h.periods.Now())})
}

func (h *Handler) upcomingPeriod(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"period": h.periods.Upcoming(h.periods.Now())})
}

func (h *Handler) retiredPeriods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"periods": h.periods.Retired()})
}

func (h *Handler) addPeriod(c *gin.Context) {
	var period artperiod.ArtPeriod
	if err := c.ShouldBindJSON(&period); err != nil {
		fail(c, bindError(err))
		return
	}

	if err := h.periods.Add(c.Request.Context(), &period); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"period": &period})
}

func (h *Handler) retirePeriod(c *gin.Context) {
	id := c.Param("id")
	if err := h.periods.Retire(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	period, err := h.periods.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": period})
}

// previewPeriod renders a prompt with any period, active or not. An empty
// body draws traits from the period.
func (h *Handler) previewPeriod(c *gin.Context) {
	var req previewRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			fail(c, bindError(err))
			return
		}
	}

	result, err := h.strategies.Preview(c.Param("id"), req.Traits)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
