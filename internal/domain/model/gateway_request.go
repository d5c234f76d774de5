package model

import "github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"

// RequestKind names a gateway transaction request.
type RequestKind string

const (
	RequestPreAuth            RequestKind = "preauth"
	RequestReAuth             RequestKind = "reauth"
	RequestCompletion         RequestKind = "completion"
	RequestPurchase           RequestKind = "purchase"
	RequestPurchaseCorrection RequestKind = "purchasecorrection"
	RequestRefund             RequestKind = "refund"
	RequestIndependentRefund  RequestKind = "ind_refund"
)

// GatewayRequest is one transaction request ready to be sent. Which fields
// are set depends on Kind; nil or empty fields are left out on the wire.
type GatewayRequest struct {
	Kind RequestKind

	OrderID     string
	CustID      string
	OrigOrderID string
	TxnNumber   *string
	Amount      *string

	PAN     *string
	ExpDate *string
	Crypt   *string

	DynamicDescriptor string

	Avs valueobject.AvsInfo
	Cvd valueobject.CvdInfo
}
