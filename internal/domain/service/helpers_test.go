package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	"github.com/killbill/killbill-moneris-plugin/pkg/testutil"
)

type fakeLister struct {
	records []model.TransactionRecord
	err     error
	calls   int
}

func (f *fakeLister) ListByPayment(_ context.Context, _ uuid.UUID, _ uuid.UUID) ([]model.TransactionRecord, error) {
	f.calls++
	return f.records, f.err
}

var errDB = errors.New("connection reset")

// record builds a stored transaction whose receipt reports gatewayType.
func record(billing valueobject.TransactionType, gatewayType, txnNumber string) model.TransactionRecord {
	callCtx, _ := valueobject.NewCallContext(testutil.TestTenantID, "test", testutil.TestEffectiveDate)
	info := model.NewTransactionInfo(testutil.TestPaymentID, uuid.New(), "CAD", model.Receipt{
		TransType:    testutil.Ptr(gatewayType),
		TxnNumber:    testutil.Ptr(txnNumber),
		ResponseCode: testutil.Ptr("027"),
	})
	return model.NewTransactionRecord(info, testutil.TestAccountID, testutil.TestPaymentMethodID, billing, nil, callCtx)
}
