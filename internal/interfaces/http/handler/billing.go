package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/rentora/backend/internal/application/billing"
)

// BillingHandler handles bill generation, water readings and garbage fee
// backfill endpoints
type BillingHandler struct {
	BaseHandler
	composerService *billingapp.BillComposerService
	readingService  *billingapp.WaterReadingService
	backfillService *billingapp.GarbageBackfillService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(
	composerService *billingapp.BillComposerService,
	readingService *billingapp.WaterReadingService,
	backfillService *billingapp.GarbageBackfillService,
) *BillingHandler {
	return &BillingHandler{
		composerService: composerService,
		readingService:  readingService,
		backfillService: backfillService,
	}
}

// GenerateBillsRequest identifies the property and billing period to bill
type GenerateBillsRequest struct {
	PropertyID string `json:"property_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,gte=2000,lte=2200"`
	Month      int    `json:"month" binding:"required,gte=1,lte=12"`
}

// BackfillGarbageRequest identifies the tenant whose garbage fees to backfill
type BackfillGarbageRequest struct {
	TenantID string `json:"tenant_id" binding:"required,uuid"`
}

// RecordWaterReadingRequest carries one meter submission. Rate is
// optional; when omitted the property's configured water rate applies.
type RecordWaterReadingRequest struct {
	TenantID        string   `json:"tenant_id" binding:"required,uuid"`
	Year            int      `json:"year" binding:"required,gte=2000,lte=2200"`
	Month           int      `json:"month" binding:"required,gte=1,lte=12"`
	PreviousReading float64  `json:"previous_reading" binding:"gte=0"`
	CurrentReading  float64  `json:"current_reading" binding:"gte=0"`
	RatePerUnit     *float64 `json:"rate_per_unit" binding:"omitempty,gt=0"`
	RecordedBy      string   `json:"recorded_by" binding:"omitempty,max=120"`
}

// ListBillsRequest filters the bill listing by property and period
type ListBillsRequest struct {
	PropertyID string `form:"property_id" binding:"required,uuid"`
	Year       int    `form:"year" binding:"required,gte=2000,lte=2200"`
	Month      int    `form:"month" binding:"required,gte=1,lte=12"`
}

// Generate composes one monthly bill per occupied unit of a property.
// Tenants already billed for the period are reported as skipped.
func (h *BillingHandler) Generate(c *gin.Context) {
	var req GenerateBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	result, err := h.composerService.GenerateBills(c.Request.Context(), billingapp.GenerateBillsRequest{
		PropertyID: propertyID,
		Year:       req.Year,
		Month:      time.Month(req.Month),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Preview runs the same charge computation as Generate without persisting
func (h *BillingHandler) Preview(c *gin.Context) {
	var req GenerateBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	result, err := h.composerService.PreviewBills(c.Request.Context(), billingapp.GenerateBillsRequest{
		PropertyID: propertyID,
		Year:       req.Year,
		Month:      time.Month(req.Month),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the persisted bills of a property for one period
func (h *BillingHandler) List(c *gin.Context) {
	var req ListBillsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	result, err := h.composerService.ListBills(c.Request.Context(), billingapp.GenerateBillsRequest{
		PropertyID: propertyID,
		Year:       req.Year,
		Month:      time.Month(req.Month),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordWaterReading records or revises a tenant's meter reading for a
// period and prices the consumption
func (h *BillingHandler) RecordWaterReading(c *gin.Context) {
	var req RecordWaterReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	appReq := billingapp.RecordReadingRequest{
		TenantID:        tenantID,
		Year:            req.Year,
		Month:           time.Month(req.Month),
		PreviousReading: toDecimal(req.PreviousReading),
		CurrentReading:  toDecimal(req.CurrentReading),
		RecordedBy:      req.RecordedBy,
	}
	if req.RatePerUnit != nil {
		appReq.RatePerUnit = toDecimal(*req.RatePerUnit)
	}

	result, err := h.readingService.RecordReading(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if result.Revised {
		h.Success(c, result)
		return
	}
	h.Created(c, result)
}

// BackfillGarbageFees generates a tenant's missing garbage fees from the
// effective lease start through the current month
func (h *BillingHandler) BackfillGarbageFees(c *gin.Context) {
	var req BackfillGarbageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	result, err := h.backfillService.Backfill(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
