package dto

import (
	"posada/internal/core/types"
	"posada/internal/domain/settings"
)

// UpdateSettingsRequest replaces the property configuration.
type UpdateSettingsRequest struct {
	CheckoutHour   int    `json:"checkoutHour" binding:"min=0,max=23"`
	CheckoutMinute int    `json:"checkoutMinute" binding:"min=0,max=59"`
	Timezone       string `json:"timezone" binding:"required"`

	TaxRate         types.Money `json:"taxRate"`
	DetectTaxInFees bool        `json:"detectTaxInFees"`

	OverstayPrice *types.Money `json:"overstayPrice"`
}

// ApplyTo applies update DTO to the current settings.
func (r *UpdateSettingsRequest) ApplyTo(s *settings.HotelSettings) {
	s.CheckoutHour = r.CheckoutHour
	s.CheckoutMinute = r.CheckoutMinute
	s.Timezone = r.Timezone
	s.TaxRate = r.TaxRate
	s.DetectTaxInFees = r.DetectTaxInFees
	s.OverstayPrice = r.OverstayPrice
}
