package moneris

import (
	"encoding/xml"
	"fmt"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
)

// nullValue is how the gateway spells an absent receipt field.
const nullValue = "null"

type requestEnvelope struct {
	XMLName  xml.Name    `xml:"request"`
	StoreID  string      `xml:"store_id"`
	APIToken string      `xml:"api_token"`
	Txn      transaction
}

// transaction is one request body. Its element name is the request kind.
// Field order is element order on the wire.
type transaction struct {
	XMLName           xml.Name
	OrderID           string   `xml:"order_id,omitempty"`
	CustID            string   `xml:"cust_id,omitempty"`
	Amount            *string  `xml:"amount,omitempty"`
	CompAmount        *string  `xml:"comp_amount,omitempty"`
	OrigOrderID       string   `xml:"orig_order_id,omitempty"`
	TxnNumber         *string  `xml:"txn_number,omitempty"`
	PAN               *string  `xml:"pan,omitempty"`
	ExpDate           *string  `xml:"expdate,omitempty"`
	CryptType         *string  `xml:"crypt_type,omitempty"`
	DynamicDescriptor string   `xml:"dynamic_descriptor,omitempty"`
	Avs               *avsInfo `xml:"avs_info,omitempty"`
	Cvd               *cvdInfo `xml:"cvd_info,omitempty"`
}

type avsInfo struct {
	StreetNumber  *string `xml:"avs_street_number,omitempty"`
	StreetName    *string `xml:"avs_street_name,omitempty"`
	Zipcode       *string `xml:"avs_zipcode,omitempty"`
	Email         *string `xml:"avs_email,omitempty"`
	Hostname      *string `xml:"avs_hostname,omitempty"`
	Browser       *string `xml:"avs_browser,omitempty"`
	ShiptoCountry *string `xml:"avs_shiptocountry,omitempty"`
	ShipMethod    *string `xml:"avs_shipmethod,omitempty"`
	MerchProdSku  *string `xml:"avs_merchprodsku,omitempty"`
	CustIP        *string `xml:"avs_custip,omitempty"`
	CustPhone     *string `xml:"avs_custphone,omitempty"`
}

type cvdInfo struct {
	Indicator *string `xml:"cvd_indicator,omitempty"`
	Value     *string `xml:"cvd_value,omitempty"`
}

type responseEnvelope struct {
	XMLName xml.Name     `xml:"response"`
	Receipt *wireReceipt `xml:"receipt"`
}

type wireReceipt struct {
	ReceiptID      *string `xml:"ReceiptId"`
	ReferenceNum   *string `xml:"ReferenceNum"`
	ResponseCode   *string `xml:"ResponseCode"`
	ISO            *string `xml:"ISO"`
	AuthCode       *string `xml:"AuthCode"`
	TransTime      *string `xml:"TransTime"`
	TransDate      *string `xml:"TransDate"`
	TransType      *string `xml:"TransType"`
	Complete       *string `xml:"Complete"`
	Message        *string `xml:"Message"`
	TransAmount    *string `xml:"TransAmount"`
	CardType       *string `xml:"CardType"`
	TxnNumber      *string `xml:"TransID"`
	TimedOut       *string `xml:"TimedOut"`
	Ticket         *string `xml:"Ticket"`
	RecurSuccess   *string `xml:"RecurSuccess"`
	AvsResultCode  *string `xml:"AvsResultCode"`
	CvdResultCode  *string `xml:"CvdResultCode"`
	CavvResultCode *string `xml:"CavvResultCode"`
	StatusCode     *string `xml:"StatusCode"`
	StatusMessage  *string `xml:"StatusMessage"`
	IsVisaDebit    *string `xml:"IsVisaDebit"`
}

func encodeRequest(storeID, apiToken string, req model.GatewayRequest) ([]byte, error) {
	if req.Kind == "" {
		return nil, fmt.Errorf("moneris: request kind is required")
	}

	txn := transaction{
		XMLName:           xml.Name{Local: string(req.Kind)},
		OrderID:           req.OrderID,
		CustID:            req.CustID,
		OrigOrderID:       req.OrigOrderID,
		TxnNumber:         req.TxnNumber,
		PAN:               req.PAN,
		ExpDate:           req.ExpDate,
		CryptType:         req.Crypt,
		DynamicDescriptor: req.DynamicDescriptor,
	}
	if req.Kind == model.RequestCompletion {
		txn.CompAmount = req.Amount
	} else {
		txn.Amount = req.Amount
	}
	if !req.Avs.IsEmpty() {
		a := req.Avs
		txn.Avs = &avsInfo{
			StreetNumber:  a.StreetNumber,
			StreetName:    a.StreetName,
			Zipcode:       a.Zipcode,
			Email:         a.Email,
			Hostname:      a.Hostname,
			Browser:       a.Browser,
			ShiptoCountry: a.ShiptoCountry,
			ShipMethod:    a.ShipMethod,
			MerchProdSku:  a.MerchProdSku,
			CustIP:        a.CustIP,
			CustPhone:     a.CustPhone,
		}
	}
	if !req.Cvd.IsEmpty() {
		txn.Cvd = &cvdInfo{Indicator: req.Cvd.Indicator, Value: req.Cvd.Value}
	}

	body, err := xml.Marshal(requestEnvelope{StoreID: storeID, APIToken: apiToken, Txn: txn})
	if err != nil {
		return nil, fmt.Errorf("moneris: encode %s request: %w", req.Kind, err)
	}
	return append([]byte(xml.Header), body...), nil
}

func decodeReceipt(body []byte) (model.Receipt, error) {
	var env responseEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return model.Receipt{}, fmt.Errorf("moneris: decode response: %w", err)
	}
	if env.Receipt == nil {
		return model.Receipt{}, fmt.Errorf("moneris: response has no receipt")
	}

	r := env.Receipt
	return model.Receipt{
		ReceiptID:      orNil(r.ReceiptID),
		ReferenceNum:   orNil(r.ReferenceNum),
		ResponseCode:   orNil(r.ResponseCode),
		ISO:            orNil(r.ISO),
		AuthCode:       orNil(r.AuthCode),
		TransTime:      orNil(r.TransTime),
		TransDate:      orNil(r.TransDate),
		TransType:      orNil(r.TransType),
		Complete:       orNil(r.Complete),
		Message:        orNil(r.Message),
		TransAmount:    orNil(r.TransAmount),
		CardType:       orNil(r.CardType),
		TxnNumber:      orNil(r.TxnNumber),
		TimedOut:       orNil(r.TimedOut),
		Ticket:         orNil(r.Ticket),
		RecurSuccess:   orNil(r.RecurSuccess),
		AvsResultCode:  orNil(r.AvsResultCode),
		CvdResultCode:  orNil(r.CvdResultCode),
		CavvResultCode: orNil(r.CavvResultCode),
		StatusCode:     orNil(r.StatusCode),
		StatusMessage:  orNil(r.StatusMessage),
		IsVisaDebit:    orNil(r.IsVisaDebit),
	}, nil
}

func orNil(v *string) *string {
	if v == nil || *v == nullValue {
		return nil
	}
	return v
}
