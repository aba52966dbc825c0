package beneficiary

import (
	"net/http"

	"github.com/JejeDurden2/beyond/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes mounts beneficiary endpoints onto the router.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/beneficiaries", handler.createBeneficiary)
	group.GET("/beneficiaries", handler.listBeneficiaries)
	group.GET("/beneficiaries/:beneficiaryID", handler.getBeneficiary)
	group.DELETE("/beneficiaries/:beneficiaryID", handler.deleteBeneficiary)
}

type httpHandler struct {
	service *Service
}

type createBeneficiaryRequest struct {
	FullName     string  `json:"full_name" binding:"required,max=128"`
	Email        string  `json:"email" binding:"required,email"`
	Relationship *string `json:"relationship" binding:"omitempty,max=64"`
}

func (h *httpHandler) createBeneficiary(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBeneficiary(c.Request.Context(), userID, req.FullName, req.Email, req.Relationship)
	if err != nil {
		switch err {
		case ErrBeneficiaryEmailExists:
			c.JSON(http.StatusConflict, gin.H{"error": "beneficiary email already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create beneficiary"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *httpHandler) listBeneficiaries(c *gin.Context) {
	userID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	beneficiaries, err := h.service.ListBeneficiaries(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list beneficiaries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"beneficiaries": beneficiaries})
}

func (h *httpHandler) getBeneficiary(c *gin.Context) {
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

	b, err := h.service.GetBeneficiary(c.Request.Context(), userID, beneficiaryID)
	if err != nil {
		if err == ErrBeneficiaryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "beneficiary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch beneficiary"})
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *httpHandler) deleteBeneficiary(c *gin.Context) {
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

	if err := h.service.DeleteBeneficiary(c.Request.Context(), userID, beneficiaryID); err != nil {
		switch err {
		case ErrBeneficiaryNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "beneficiary not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete beneficiary"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
