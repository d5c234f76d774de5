package model

// Receipt is the gateway's raw answer to one transaction request. Every field
// is optional: nil means the gateway did not send it, which is not the same as
// an empty string.
type Receipt struct {
	ReceiptID      *string
	ReferenceNum   *string
	ResponseCode   *string
	ISO            *string
	AuthCode       *string
	TransTime      *string
	TransDate      *string
	TransType      *string
	Complete       *string
	Message        *string
	TransAmount    *string
	CardType       *string
	TxnNumber      *string
	TimedOut       *string
	Ticket         *string
	RecurSuccess   *string
	AvsResultCode  *string
	CvdResultCode  *string
	CavvResultCode *string
	StatusCode     *string
	StatusMessage  *string
	IsVisaDebit    *string
}

// fields lists every receipt field with the name the billing platform sees.
func (r Receipt) fields() []namedField {
	return []namedField{
		{"ReceiptId", r.ReceiptID},
		{"ReferenceNum", r.ReferenceNum},
		{"ResponseCode", r.ResponseCode},
		{"ISO", r.ISO},
		{"AuthCode", r.AuthCode},
		{"TransTime", r.TransTime},
		{"TransDate", r.TransDate},
		{"TransType", r.TransType},
		{"Complete", r.Complete},
		{"Message", r.Message},
		{"TransAmount", r.TransAmount},
		{"CardType", r.CardType},
		{"TxnNumber", r.TxnNumber},
		{"TimedOut", r.TimedOut},
		{"Ticket", r.Ticket},
		{"RecurSuccess", r.RecurSuccess},
		{"AvsResultCode", r.AvsResultCode},
		{"CvdResultCode", r.CvdResultCode},
		{"CavvResultCode", r.CavvResultCode},
		{"StatusCode", r.StatusCode},
		{"StatusMsg", r.StatusMessage},
		{"IsVisaDebit", r.IsVisaDebit},
	}
}

type namedField struct {
	name  string
	value *string
}

// Equal compares every field, treating nil and "" as different.
func (r Receipt) Equal(other Receipt) bool {
	a, b := r.fields(), other.fields()
	for i := range a {
		if !equalOptional(a[i].value, b[i].value) {
			return false
		}
	}
	return true
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
