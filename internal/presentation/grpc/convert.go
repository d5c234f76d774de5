package grpc

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/killbill/killbill-moneris-plugin/internal/application/dto"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
)

func fromPropertyMsgs(msgs []*PluginPropertyMsg) []valueobject.PluginProperty {
	if len(msgs) == 0 {
		return nil
	}
	props := make([]valueobject.PluginProperty, 0, len(msgs))
	for _, m := range msgs {
		if m == nil {
			continue
		}
		props = append(props, valueobject.PluginProperty{Key: m.Key, Value: m.Value, IsUpdatable: m.IsUpdatable})
	}
	return props
}

func toPropertyMsgs(props []valueobject.PluginProperty) []*PluginPropertyMsg {
	if len(props) == 0 {
		return nil
	}
	msgs := make([]*PluginPropertyMsg, 0, len(props))
	for _, p := range props {
		msgs = append(msgs, &PluginPropertyMsg{Key: p.Key, Value: p.Value, IsUpdatable: p.IsUpdatable})
	}
	return msgs
}

func toTransactionInfoMsg(r dto.PaymentTransactionResponse) *PaymentTransactionInfoMsg {
	msg := &PaymentTransactionInfoMsg{
		KbPaymentID:              r.KbPaymentID.String(),
		KbTransactionID:          r.KbTransactionID.String(),
		TransactionType:          r.TransactionType,
		Currency:                 r.Currency,
		CreatedDate:              toTimestamp(r.CreatedDate),
		Status:                   r.Status,
		GatewayError:             deref(r.GatewayError),
		GatewayErrorCode:         deref(r.GatewayErrorCode),
		FirstPaymentReferenceID:  deref(r.FirstPaymentReferenceID),
		SecondPaymentReferenceID: deref(r.SecondPaymentReferenceID),
		Properties:               toPropertyMsgs(r.Properties),
	}
	if r.Amount != nil {
		msg.Amount = r.Amount.String()
	}
	if r.EffectiveDate != nil {
		msg.EffectiveDate = toTimestamp(*r.EffectiveDate)
	}
	return msg
}

func toPaymentMethodMsg(pm dto.PaymentMethodResponse) *PaymentMethodMsg {
	return &PaymentMethodMsg{
		KbAccountID:             pm.KbAccountID.String(),
		KbPaymentMethodID:       pm.KbPaymentMethodID.String(),
		ExternalPaymentMethodID: pm.ExternalPaymentMethodID,
		IsDefault:               pm.IsDefault,
		Properties:              toPropertyMsgs(pm.Properties),
		CreatedAt:               toTimestamp(pm.CreatedAt),
		UpdatedAt:               toTimestamp(pm.UpdatedAt),
	}
}

func toTimestamp(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
