package usecase

import (
	"github.com/killbill/killbill-moneris-plugin/internal/application/dto"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
)

// toTransactionResponse reports the record's effective type, so a receipt
// with an unrecognized type still shows the billing operation.
func toTransactionResponse(record model.TransactionRecord) dto.PaymentTransactionResponse {
	resp := toInfoResponse(record.Info())
	resp.TransactionType = record.EffectiveType().String()
	resp.CreatedDate = record.CreatedAt()
	return resp
}

func toInfoResponse(info model.TransactionInfo) dto.PaymentTransactionResponse {
	return dto.PaymentTransactionResponse{
		KbPaymentID:              info.KbPaymentID(),
		KbTransactionID:          info.KbTransactionID(),
		TransactionType:          info.TransactionType().String(),
		Amount:                   info.Amount(),
		Currency:                 info.Currency(),
		EffectiveDate:            info.EffectiveDate(),
		Status:                   info.Status().String(),
		GatewayError:             info.GatewayError(),
		GatewayErrorCode:         info.GatewayErrorCode(),
		FirstPaymentReferenceID:  info.FirstPaymentReferenceID(),
		SecondPaymentReferenceID: info.SecondPaymentReferenceID(),
		Properties:               info.Properties(),
	}
}

func toPaymentMethodResponse(pm model.PaymentMethod) dto.PaymentMethodResponse {
	return dto.PaymentMethodResponse{
		KbAccountID:             pm.KbAccountID(),
		KbPaymentMethodID:       pm.KbPaymentMethodID(),
		ExternalPaymentMethodID: pm.ExternalPaymentMethodID(),
		IsDefault:               pm.IsDefault(),
		Properties:              pm.Properties(),
		CreatedAt:               pm.CreatedAt(),
		UpdatedAt:               pm.UpdatedAt(),
	}
}
