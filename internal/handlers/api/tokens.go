package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
	"github.com/KirkDiggler/vertical-mint/internal/services/generation"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

type generateRequest struct {
	TokenID *uint64 `json:"tokenId" binding:"required"`
	// Traits are optional; without them the current strategy selects
	Traits *traits.SelectedTraits `json:"traits"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}

	var (
		result *generation.Result
		err    error
	)
	if req.Traits != nil {
		result, err = h.generation.Generate(c.Request.Context(), &generation.GenerateInput{
			TokenID: *req.TokenID,
			Traits:  req.Traits,
		})
	} else {
		result, err = h.generation.Mint(c.Request.Context(), *req.TokenID)
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) tokenRecord(c *gin.Context) {
	tokenID, ok := tokenParam(c)
	if !ok {
		return
	}

	record, err := h.generation.Record(c.Request.Context(), tokenID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) tokenURI(c *gin.Context) {
	tokenID, ok := tokenParam(c)
	if !ok {
		return
	}

	uri, err := h.generation.TokenURI(c.Request.Context(), tokenID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokenId": tokenID, "uri": uri})
}

func (h *Handler) recentTokens(c *gin.Context) {
	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRecentLimit {
			fail(c, errors.Validationf("limit must be between 1 and %d", maxRecentLimit))
			return
		}
		limit = n
	}

	records, err := h.generation.Recent(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func tokenParam(c *gin.Context) (uint64, bool) {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, errors.Validationf("invalid token id %q", c.Param("id")))
		return 0, false
	}
	return tokenID, true
}
