package valueobject

// PluginProperty is one key/value pair exchanged with the billing platform.
// A nil Value means the property was sent without one.
type PluginProperty struct {
	Key         string  `json:"key"`
	Value       *string `json:"value,omitempty"`
	IsUpdatable bool    `json:"is_updatable,omitempty"`
}

// Property keys the plugin reads from a call's properties.
const (
	PropertyPAN               = "pan"
	PropertyExpDate           = "expDate"
	PropertyCrypt             = "crypt"
	PropertyDynamicDescriptor = "dynamicDescriptor"
	PropertyCvdIndicator      = "cvdIndicator"
	PropertyCvdValue          = "cvdValue"

	PropertyAvsStreetNumber  = "avsStreetNumber"
	PropertyAvsStreetName    = "avsStreetName"
	PropertyAvsZipcode       = "avsZipcode"
	PropertyAvsEmail         = "avsEmail"
	PropertyAvsHostname      = "avsHostname"
	PropertyAvsBrowser       = "avsBrowser"
	PropertyAvsShiptoCountry = "avsShiptoCountry"
	PropertyAvsShipMethod    = "avsShipMethod"
	PropertyAvsMerchProdSku  = "avsMerchProdSku"
	PropertyAvsCustIP        = "avsCustIp"
	PropertyAvsCustPhone     = "avsCustPhone"
)

// cardDataKeys are the properties that carry cardholder data. They are only
// ever forwarded to the gateway, never stored.
var cardDataKeys = map[string]struct{}{
	PropertyPAN:          {},
	PropertyExpDate:      {},
	PropertyCvdValue:     {},
	PropertyCvdIndicator: {},
}

// WithoutCardData returns properties minus any cardholder data.
func WithoutCardData(properties []PluginProperty) []PluginProperty {
	kept := make([]PluginProperty, 0, len(properties))
	for _, p := range properties {
		if _, ok := cardDataKeys[p.Key]; ok {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// AvsInfo is the address verification block of a gateway request.
type AvsInfo struct {
	StreetNumber  *string
	StreetName    *string
	Zipcode       *string
	Email         *string
	Hostname      *string
	Browser       *string
	ShiptoCountry *string
	ShipMethod    *string
	MerchProdSku  *string
	CustIP        *string
	CustPhone     *string
}

// IsEmpty reports whether no AVS field is set.
func (a AvsInfo) IsEmpty() bool {
	for _, f := range []*string{
		a.StreetNumber, a.StreetName, a.Zipcode, a.Email, a.Hostname, a.Browser,
		a.ShiptoCountry, a.ShipMethod, a.MerchProdSku, a.CustIP, a.CustPhone,
	} {
		if f != nil {
			return false
		}
	}
	return true
}

// CvdInfo is the card verification block of a gateway request.
type CvdInfo struct {
	Indicator *string
	Value     *string
}

// IsEmpty reports whether neither CVD field is set.
func (c CvdInfo) IsEmpty() bool {
	return c.Indicator == nil && c.Value == nil
}

// MonerisProperties is the typed view of a call's properties. It is built
// once per call and never modified.
type MonerisProperties struct {
	values map[string]string
}

// NewMonerisProperties indexes properties by key. Properties without a value
// are skipped; when a key repeats the last value wins.
func NewMonerisProperties(properties []PluginProperty) MonerisProperties {
	values := make(map[string]string, len(properties))
	for _, p := range properties {
		if p.Value != nil {
			values[p.Key] = *p.Value
		}
	}
	return MonerisProperties{values: values}
}

func (p MonerisProperties) get(key string) *string {
	v, ok := p.values[key]
	if !ok {
		return nil
	}
	return &v
}

// PAN is the card number, digits only.
func (p MonerisProperties) PAN() *string { return p.get(PropertyPAN) }

// ExpDate is the card expiry as YYMM.
func (p MonerisProperties) ExpDate() *string { return p.get(PropertyExpDate) }

// Crypt is the e-commerce indicator.
func (p MonerisProperties) Crypt() *string { return p.get(PropertyCrypt) }

func (p MonerisProperties) AvsInfo() AvsInfo {
	return AvsInfo{
		StreetNumber:  p.get(PropertyAvsStreetNumber),
		StreetName:    p.get(PropertyAvsStreetName),
		Zipcode:       p.get(PropertyAvsZipcode),
		Email:         p.get(PropertyAvsEmail),
		Hostname:      p.get(PropertyAvsHostname),
		Browser:       p.get(PropertyAvsBrowser),
		ShiptoCountry: p.get(PropertyAvsShiptoCountry),
		ShipMethod:    p.get(PropertyAvsShipMethod),
		MerchProdSku:  p.get(PropertyAvsMerchProdSku),
		CustIP:        p.get(PropertyAvsCustIP),
		CustPhone:     p.get(PropertyAvsCustPhone),
	}
}

func (p MonerisProperties) CvdInfo() CvdInfo {
	return CvdInfo{
		Indicator: p.get(PropertyCvdIndicator),
		Value:     p.get(PropertyCvdValue),
	}
}

// DynamicDescriptor returns the statement descriptor property, or def when
// the caller did not send one.
func (p MonerisProperties) DynamicDescriptor(def string) string {
	if v := p.get(PropertyDynamicDescriptor); v != nil {
		return *v
	}
	return def
}
