package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	portssvc "github.com/mocustoms/store_transfer_app/internal/core/ports/services"
	"github.com/mocustoms/store_transfer_app/internal/dto"
	"github.com/mocustoms/store_transfer_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// storeHandler exposes read access to store reference data.
type storeHandler struct {
	storeService portssvc.StoreSvcFacade
}

func newStoreHandler(ss portssvc.StoreSvcFacade) *storeHandler {
	return &storeHandler{storeService: ss}
}

// registerStoreRoutes registers routes related to stores.
func registerStoreRoutes(rg *gin.RouterGroup, storeService portssvc.StoreSvcFacade) {
	h := newStoreHandler(storeService)

	stores := rg.Group("/stores")
	{
		stores.GET("", h.listStores)
		stores.GET("/:storeID", h.getStoreByID)
	}
}

// listStores godoc
// @Summary List all stores
// @Description Retrieves all stores with their transfer eligibility flags
// @Tags stores
// @Produce  json
// @Success 200 {array} dto.StoreResponse
// @Failure 500 {object} map[string]string "Failed to list stores"
// @Security BearerAuth
// @Router /stores [get]
func (h *storeHandler) listStores(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stores, err := h.storeService.ListStores(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list stores", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stores"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListStoreResponse(stores))
}

// getStoreByID godoc
// @Summary Get a store by id
// @Description Retrieves details for a specific store
// @Tags stores
// @Produce  json
// @Param   storeID path string true "Store ID"
// @Success 200 {object} dto.StoreResponse
// @Failure 404 {object} map[string]string "Store not found"
// @Failure 500 {object} map[string]string "Failed to retrieve store"
// @Security BearerAuth
// @Router /stores/{storeID} [get]
func (h *storeHandler) getStoreByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	storeID := c.Param("storeID")

	store, err := h.storeService.GetStoreByID(c.Request.Context(), storeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		} else {
			logger.Error("Failed to get store", slog.String("store_id", storeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve store"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStoreResponse(store))
}
