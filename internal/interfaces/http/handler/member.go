package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appmember "github.com/kopkar/backend/internal/application/member"
	"github.com/shopspring/decimal"
)

// MemberHandler handles member API endpoints
type MemberHandler struct {
	BaseHandler
	memberService *appmember.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService *appmember.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// RegisterMemberRequest is the request body for enrolling a member
type RegisterMemberRequest struct {
	MemberNumber string          `json:"member_number" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Phone        string          `json:"phone"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	Pin          string          `json:"pin"`
}

// RegisterMember handles POST /members
func (h *MemberHandler) RegisterMember(c *gin.Context) {
	var req RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	m, err := h.memberService.RegisterMember(c.Request.Context(), appmember.RegisterMemberRequest{
		MemberNumber: req.MemberNumber,
		Name:         req.Name,
		Phone:        req.Phone,
		CreditLimit:  req.CreditLimit,
		Pin:          req.Pin,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, m)
}

// GetMember handles GET /members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid member ID")
		return
	}

	m, err := h.memberService.GetMember(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, m)
}

// SetPinRequest is the request body for replacing a member PIN
type SetPinRequest struct {
	Pin string `json:"pin" binding:"required,min=4"`
}

// SetPin handles PUT /members/:id/pin
func (h *MemberHandler) SetPin(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid member ID")
		return
	}

	var req SetPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.memberService.SetPin(c.Request.Context(), memberID, req.Pin); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"member_id": memberID})
}

// RegisterRoutes registers member routes
func (h *MemberHandler) RegisterRoutes(rg *gin.RouterGroup) {
	members := rg.Group("/members")
	{
		members.POST("", h.RegisterMember)
		members.GET("/:id", h.GetMember)
		members.PUT("/:id/pin", h.SetPin)
	}
}
