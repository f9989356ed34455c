package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/infra/redisx"
	"github.com/Daud2712/E-Commerce-sub000/internal/services"
)

type DeliveryHandler struct {
	service *services.DeliveryService
	rdb     *redis.Client
}

func NewDeliveryHandler(s *services.DeliveryService, rdb *redis.Client) *DeliveryHandler {
	return &DeliveryHandler{service: s, rdb: rdb}
}

func (h *DeliveryHandler) Create(c *gin.Context) {
	var req CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.service.Create(c.Request.Context(), actorFrom(c), services.CreateDeliveryInput{
		OrderID:     req.OrderID,
		BuyerID:     req.BuyerID,
		PackageName: req.PackageName,
		Price:       req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// Owned lists the caller's deliveries: the ones a rider is assigned
// to, or the ones a seller created.
func (h *DeliveryHandler) Owned(c *gin.Context) {
	if actorFrom(c).Role == domain.RoleRider {
		h.list(c, h.service.ListByRider)
		return
	}
	h.list(c, h.service.ListBySeller)
}

func (h *DeliveryHandler) BuyerDeliveries(c *gin.Context) {
	h.list(c, h.service.ListByBuyer)
}

func (h *DeliveryHandler) RiderDeliveries(c *gin.Context) {
	h.list(c, h.service.ListByRider)
}

// Track is the public lookup by tracking number, cached briefly so
// repeated polling doesn't hit the store.
func (h *DeliveryHandler) Track(c *gin.Context) {
	trackingNumber := c.Param("id")
	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf(redisx.KeyTracking, trackingNumber)

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	d, err := h.service.GetByTracking(ctx, trackingNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(d); err == nil {
			h.rdb.Set(ctx, cacheKey, data, redisx.TTLTracking)
		}
	}
	c.JSON(http.StatusOK, d)
}

func (h *DeliveryHandler) AssignRider(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AssignRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.service.AssignRider(c.Request.Context(), actorFrom(c), id, req.RiderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DeliveryHandler) Accept(c *gin.Context) {
	h.decide(c, h.service.Accept)
}

func (h *DeliveryHandler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject)
}

func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.service.UpdateStatus(c.Request.Context(), actorFrom(c), id, domain.DeliveryStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DeliveryHandler) Receive(c *gin.Context) {
	h.decide(c, h.service.Receive)
}

func (h *DeliveryHandler) Unreceive(c *gin.Context) {
	h.decide(c, h.service.Unreceive)
}

func (h *DeliveryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *DeliveryHandler) list(c *gin.Context, fn func(ctx context.Context, actor domain.Actor) ([]domain.Delivery, error)) {
	deliveries, err := fn(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

func (h *DeliveryHandler) decide(c *gin.Context, fn func(ctx context.Context, actor domain.Actor, id uint64) (*domain.Delivery, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	d, err := fn(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
