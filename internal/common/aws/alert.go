// internal/common/aws/alert.go
package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DealAlert is published when a listing meets both 1% rules.
type DealAlert struct {
	ListingID        string  `json:"zpid"`
	Address          string  `json:"address"`
	City             string  `json:"city,omitempty"`
	State            string  `json:"state,omitempty"`
	Price            float64 `json:"price"`
	MonthlyRent      float64 `json:"monthlyRent"`
	SquareFootage    float64 `json:"squareFootage"`
	RentToValueRatio float64 `json:"rentToValueRatio"`
	SqftToValueRatio float64 `json:"sqftToValueRatio"`
	EstimateSource   string  `json:"estimateSource"`
}

func (a DealAlert) Subject() string {
	return fmt.Sprintf("Deal alert: %s (%.2f%% rent-to-value)", a.Address, a.RentToValueRatio)
}

func (a DealAlert) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", a.Address)
	if a.City != "" {
		fmt.Fprintf(&b, ", %s %s", a.City, a.State)
	}
	fmt.Fprintf(&b, "\nPrice: $%.0f\n", a.Price)
	fmt.Fprintf(&b, "Monthly rent (%s): $%.0f\n", a.EstimateSource, a.MonthlyRent)
	fmt.Fprintf(&b, "Square footage: %.0f\n", a.SquareFootage)
	fmt.Fprintf(&b, "Rent-to-value: %.2f%%\n", a.RentToValueRatio)
	fmt.Fprintf(&b, "Sqft-to-value: %.2f%%\n", a.SqftToValueRatio)
	return b.String()
}

func (a DealAlert) JSON() (string, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("marshal deal alert: %w", err)
	}
	return string(data), nil
}

// AlertSender delivers a deal alert on one channel.
type AlertSender interface {
	SendDealAlert(ctx context.Context, alert DealAlert) error
}

// DealAlerts fans an alert out to every configured channel.
type DealAlerts struct {
	senders []AlertSender
}

func NewDealAlerts(senders ...AlertSender) *DealAlerts {
	return &DealAlerts{senders: senders}
}

// SendDealAlert attempts every channel and joins the failures.
func (d *DealAlerts) SendDealAlert(ctx context.Context, alert DealAlert) error {
	var errs []error
	for _, s := range d.senders {
		if err := s.SendDealAlert(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
