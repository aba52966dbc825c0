package keepsake

import (
	"net/http"
	"time"

	"github.com/JejeDurden2/beyond/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts keepsake operations under the provided router group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/keepsakes", handler.createKeepsake)
	group.GET("/keepsakes", handler.listKeepsakes)
	group.GET("/keepsakes/:keepsakeID", handler.getKeepsake)
	group.PUT("/keepsakes/:keepsakeID", handler.updateKeepsake)
	group.DELETE("/keepsakes/:keepsakeID", handler.deleteKeepsake)
	group.GET("/beneficiaries/:beneficiaryID/keepsakes", handler.listForBeneficiary)
}

type httpHandler struct {
	service *Service
}

type createKeepsakeRequest struct {
	BeneficiaryID uuid.UUID  `json:"beneficiary_id" binding:"required"`
	Kind          string     `json:"kind" binding:"required"`
	Title         string     `json:"title" binding:"required"`
	Message       string     `json:"message"`
	FileID        *uuid.UUID `json:"file_id"`
	ReleaseAt     *time.Time `json:"release_at"`
}

type updateKeepsakeRequest struct {
	Title     string     `json:"title" binding:"required"`
	Message   string     `json:"message"`
	ReleaseAt *time.Time `json:"release_at"`
}

func (h *httpHandler) createKeepsake(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createKeepsakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, CreateInput{
		BeneficiaryID: req.BeneficiaryID,
		Kind:          Kind(req.Kind),
		Title:         req.Title,
		Message:       req.Message,
		FileID:        req.FileID,
		ReleaseAt:     req.ReleaseAt,
	})
	if err != nil {
		switch err {
		case ErrBeneficiaryMismatch:
			c.JSON(http.StatusNotFound, gin.H{"error": "beneficiary not found"})
		case ErrFileMismatch:
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		case ErrInvalidKind:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid keepsake kind"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *httpHandler) listKeepsakes(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	list, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list keepsakes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"keepsakes": list})
}

func (h *httpHandler) listForBeneficiary(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	beneficiaryID, err := uuid.Parse(c.Param("beneficiaryID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid beneficiary id"})
		return
	}

	list, err := h.service.ListForBeneficiary(c.Request.Context(), userID, beneficiaryID)
	if err != nil {
		if err == ErrBeneficiaryMismatch {
			c.JSON(http.StatusNotFound, gin.H{"error": "beneficiary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list keepsakes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"keepsakes": list})
}

func (h *httpHandler) getKeepsake(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	keepsakeID, err := uuid.Parse(c.Param("keepsakeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid keepsake id"})
		return
	}

	k, err := h.service.Get(c.Request.Context(), userID, keepsakeID)
	if err != nil {
		if err == ErrKeepsakeNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "keepsake not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get keepsake"})
		return
	}

	c.JSON(http.StatusOK, k)
}

func (h *httpHandler) updateKeepsake(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	keepsakeID, err := uuid.Parse(c.Param("keepsakeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid keepsake id"})
		return
	}

	var req updateKeepsakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), userID, keepsakeID, UpdateInput{
		Title:     req.Title,
		Message:   req.Message,
		ReleaseAt: req.ReleaseAt,
	})
	if err != nil {
		switch err {
		case ErrKeepsakeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "keepsake not found"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *httpHandler) deleteKeepsake(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	keepsakeID, err := uuid.Parse(c.Param("keepsakeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid keepsake id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, keepsakeID); err != nil {
		if err == ErrKeepsakeNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "keepsake not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete keepsake"})
		return
	}

	c.Status(http.StatusNoContent)
}
