package billing

// Severity grades a warning entry.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Warning codes emitted by the engine, in emission order.
const (
	WarnMissingRate      = "MISSING_RATE"
	WarnRateOverride     = "RATE_OVERRIDE"
	WarnNightsOverride   = "NIGHTS_OVERRIDE"
	WarnSameDayCandidate = "SAME_DAY_CANDIDATE"
	WarnNightsDiffer     = "NIGHTS_DIFFER"
	WarnUnpricedCharge   = "UNPRICED_CHARGE"
	WarnDiscountOverride = "DISCOUNT_OVERRIDE"
	WarnTaxOverride      = "TAX_OVERRIDE"
	WarnBalanceDue       = "BALANCE_DUE"
	WarnOverpayment      = "OVERPAYMENT"
)

// Warning is a non-fatal condition attached to a successful computation.
// Warnings ride on results and are never raised as errors.
type Warning struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func warn(code string, severity Severity, message string) Warning {
	return Warning{Code: code, Severity: severity, Message: message}
}
