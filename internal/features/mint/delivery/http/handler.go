package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"mint-agent-backend/internal/common/errors"
	"mint-agent-backend/internal/common/logger"
	"mint-agent-backend/internal/common/middleware"
	"mint-agent-backend/internal/common/validation"
	"mint-agent-backend/internal/features/mint/models"
	"mint-agent-backend/internal/features/mint/service"
	"mint-agent-backend/internal/utils/units"
)

const maxAttemptsLimit = 100

// MintHandler serves the mint agent API. Descriptor reloads take the write lock;
// everything else, mint attempts included, runs under the read lock.
type MintHandler struct {
	service service.MintService
	mu      sync.RWMutex
	now     func() time.Time
}

func NewMintHandler(service service.MintService) *MintHandler {
	return &MintHandler{
		service: service,
		now:     time.Now,
	}
}

func (h *MintHandler) RegisterRoutes(router *gin.RouterGroup) {
	collection := router.Group("/collection")
	{
		collection.GET("", h.GetCollection)
		collection.GET("/eligibility", h.GetEligibility)
		collection.POST("/refresh", h.Refresh)
		collection.POST("/asset/:id", h.SelectAsset)
	}

	router.POST("/mint", h.Mint)
	router.GET("/videos/:id/minted", h.VideoMinted)
	router.GET("/wallet/balance", h.WalletBalance)
	router.GET("/attempts", h.RecentAttempts)
}

func (h *MintHandler) GetCollection(c *gin.Context) {
	h.mu.RLock()
	target := h.service.Target()
	descriptor := h.service.Descriptor()
	h.mu.RUnlock()

	c.JSON(http.StatusOK, models.CollectionResponse{
		ContractAddress: target.ContractAddress.Hex(),
		CollectionID:    target.CollectionID,
		Variant:         target.Variant.String(),
		AssetID:         target.AssetID,
		Descriptor:      descriptor,
	})
}

func (h *MintHandler) GetEligibility(c *gin.Context) {
	h.mu.RLock()
	descriptor := h.service.Descriptor()
	snap := h.service.Eligibility()
	h.mu.RUnlock()

	resp := models.EligibilityResponse{
		Phase:       snap.Phase.String(),
		PerTxLimit:  snap.PerTxLimit,
		EvaluatedAt: h.now().Unix(),
	}
	if snap.UnitPrice != nil {
		resp.UnitPriceWei = snap.UnitPrice.String()
		resp.UnitPriceEther = units.FormatEther(snap.UnitPrice)
	}
	resp.Remaining, resp.SupplyCapped = descriptor.Remaining()

	c.JSON(http.StatusOK, resp)
}

func (h *MintHandler) Refresh(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.service.Refresh(c.Request.Context()); err != nil {
		middleware.RespondError(c, errors.Translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "descriptor": h.service.Descriptor()})
}

func (h *MintHandler) SelectAsset(c *gin.Context) {
	id := c.Param("id")
	if err := validation.ValidateTokenID(id); err != nil {
		middleware.RespondError(c, errors.NewValidationError("id", err.Error()))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.service.SelectAsset(c.Request.Context(), id); err != nil {
		middleware.RespondError(c, errors.Translate(err))
		return
	}

	logger.Info().
		Str("request_id", middleware.GetRequestID(c)).
		Str("asset_id", id).
		Msg("Asset selected")

	c.JSON(http.StatusOK, gin.H{"success": true, "descriptor": h.service.Descriptor()})
}

func (h *MintHandler) Mint(c *gin.Context) {
	var req models.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, errors.NewValidationError("quantity", err.Error()))
		return
	}

	h.mu.RLock()
	receipt, err := h.service.Mint(c.Request.Context(), req.Quantity)
	h.mu.RUnlock()

	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	if receipt == nil {
		c.JSON(http.StatusOK, models.MintResponse{Success: false, Message: "Mint attempt was cancelled"})
		return
	}

	resp := models.MintResponse{
		Success: true,
		TxHash:  receipt.TxHash.Hex(),
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		resp.BlockNumber = receipt.BlockNumber.Uint64()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MintHandler) VideoMinted(c *gin.Context) {
	id := c.Param("id")
	if err := validation.ValidateVideoID(id); err != nil {
		middleware.RespondError(c, errors.NewValidationError("id", err.Error()))
		return
	}

	h.mu.RLock()
	minted, err := h.service.VideoMinted(c.Request.Context(), id)
	h.mu.RUnlock()

	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.VideoMintedResponse{VideoID: id, Minted: minted})
}

func (h *MintHandler) WalletBalance(c *gin.Context) {
	h.mu.RLock()
	balance, err := h.service.WalletBalance(c.Request.Context())
	h.mu.RUnlock()

	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.BalanceResponse{Ether: balance.String()})
}

func (h *MintHandler) RecentAttempts(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit <= 0 || limit > maxAttemptsLimit {
		middleware.RespondError(c, errors.NewValidationError("limit", "must be between 1 and 100"))
		return
	}

	attempts, err := h.service.RecentAttempts(c.Request.Context(), limit)
	if err != nil {
		middleware.RespondError(c, errors.Wrap(err, errors.ErrCodeInternal, "Failed to read mint attempts"))
		return
	}
	if attempts == nil {
		attempts = []models.Attempt{}
	}
	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}
