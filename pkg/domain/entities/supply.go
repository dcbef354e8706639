package entities

import (
	"fmt"
	"time"
)

// OpenReceipt represents an open purchase order line expected to arrive
type OpenReceipt struct {
	Quantity     Quantity
	ExpectedDate time.Time
	Reference    string // PO reference for risk statements
	Confirmed    bool   // carrier-confirmed in transit
}

// SupplyPosition represents the current supply state of a SKU
type SupplyPosition struct {
	SKU          SKU
	OnHand       Quantity
	OpenReceipts []OpenReceipt // ordered by expected date
}

// NewSupplyPosition creates a validated SupplyPosition
func NewSupplyPosition(sku SKU, onHand Quantity, receipts []OpenReceipt) (*SupplyPosition, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if onHand < 0 {
		return nil, fmt.Errorf("on hand cannot be negative, got %g", float64(onHand))
	}
	for i, r := range receipts {
		if r.Quantity <= 0 {
			return nil, fmt.Errorf("receipt %d quantity must be positive, got %g", i, float64(r.Quantity))
		}
		if r.ExpectedDate.IsZero() {
			return nil, fmt.Errorf("receipt %d expected date cannot be zero", i)
		}
	}

	return &SupplyPosition{
		SKU:          sku,
		OnHand:       onHand,
		OpenReceipts: receipts,
	}, nil
}

// OverdueReceipts returns unconfirmed receipts whose expected date is
// strictly before asOf
func (p *SupplyPosition) OverdueReceipts(asOf time.Time) []OpenReceipt {
	var overdue []OpenReceipt
	for _, r := range p.OpenReceipts {
		if !r.Confirmed && r.ExpectedDate.Before(asOf) {
			overdue = append(overdue, r)
		}
	}
	return overdue
}

// DeliveryRecord represents one historical vendor delivery, used to learn
// the effective lead time of a SKU
type DeliveryRecord struct {
	SKU          SKU
	OrderedDate  time.Time
	ReceivedDate time.Time
}

// NewDeliveryRecord creates a validated DeliveryRecord
func NewDeliveryRecord(sku SKU, orderedDate, receivedDate time.Time) (*DeliveryRecord, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if receivedDate.Before(orderedDate) {
		return nil, fmt.Errorf("received date %v cannot be before ordered date %v", receivedDate, orderedDate)
	}

	return &DeliveryRecord{
		SKU:          sku,
		OrderedDate:  orderedDate,
		ReceivedDate: receivedDate,
	}, nil
}

// LagDays returns the order-to-receipt lag in whole days
func (d DeliveryRecord) LagDays() int {
	return int(d.ReceivedDate.Sub(d.OrderedDate).Hours() / 24)
}
