package payment

import (
	"net/url"
	"strings"
)

const ProviderCinetPay = "cinetpay"

// CallbackFields is the closed record of form fields CinetPay posts to the
// notify URL. Raw keeps the complete payload for audit so provider-specific
// extras are never silently dropped.
type CallbackFields struct {
	SiteID        string
	TransactionID string
	TransDate     string
	Amount        string
	Currency      string
	Signature     string
	PaymentMethod string
	PhoneNumber   string
	PhonePrefix   string
	Language      string
	Version       string
	PaymentConfig string
	PageAction    string
	Custom        string
	Designation   string
	ErrorMessage  string

	Raw url.Values
}

// ParseCallback maps the provider's form payload onto the closed field record.
func ParseCallback(form url.Values) CallbackFields {
	return CallbackFields{
		SiteID:        form.Get("cpm_site_id"),
		TransactionID: strings.TrimSpace(form.Get("cpm_trans_id")),
		TransDate:     form.Get("cpm_trans_date"),
		Amount:        form.Get("cpm_amount"),
		Currency:      form.Get("cpm_currency"),
		Signature:     form.Get("signature"),
		PaymentMethod: form.Get("payment_method"),
		PhoneNumber:   form.Get("cel_phone_num"),
		PhonePrefix:   form.Get("cpm_phone_prefixe"),
		Language:      form.Get("cpm_language"),
		Version:       form.Get("cpm_version"),
		PaymentConfig: form.Get("cpm_payment_config"),
		PageAction:    form.Get("cpm_page_action"),
		Custom:        form.Get("cpm_custom"),
		Designation:   form.Get("cpm_designation"),
		ErrorMessage:  form.Get("cpm_error_message"),
		Raw:           form,
	}
}

// Accepted interprets the callback's own outcome field. Only meaningful when
// the callback signature has been verified; otherwise the status-check
// endpoint is the source of truth.
func (f CallbackFields) Accepted() bool {
	msg := strings.ToUpper(strings.TrimSpace(f.ErrorMessage))
	return msg == "SUCCES" || msg == "SUCCESS"
}

// signedConcat returns the byte string covered by the X-TOKEN digest. The
// field order follows the provider's HMAC convention and must not change.
func (f CallbackFields) signedConcat() string {
	return f.SiteID +
		f.TransactionID +
		f.TransDate +
		f.Amount +
		f.Currency +
		f.Signature +
		f.PaymentMethod +
		f.PhoneNumber +
		f.PhonePrefix +
		f.Language +
		f.Version +
		f.PaymentConfig +
		f.PageAction +
		f.Custom +
		f.Designation +
		f.ErrorMessage
}
