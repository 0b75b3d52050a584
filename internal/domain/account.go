package domain

import "github.com/shopspring/decimal"

type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "ACTIVE"
	AccountStatusBlocked AccountStatus = "BLOCKED"
	AccountStatusClosed  AccountStatus = "CLOSED"
)

type AccountType string

const (
	AccountTypeCurrent         AccountType = "CURRENT"
	AccountTypeForeignCurrency AccountType = "FOREIGN_CURRENCY"
)

type AccountSubtype string

const (
	AccountSubtypePersonal AccountSubtype = "PERSONAL"
	AccountSubtypeBusiness AccountSubtype = "BUSINESS"
	AccountSubtypeSavings  AccountSubtype = "SAVINGS"
	AccountSubtypePension  AccountSubtype = "PENSION"
	AccountSubtypeYouth    AccountSubtype = "YOUTH"
	AccountSubtypeStudent  AccountSubtype = "STUDENT"
	AccountSubtypeStandard AccountSubtype = "STANDARD"
)

type CurrencyType string

const (
	CurrencyRSD CurrencyType = "RSD"
	CurrencyEUR CurrencyType = "EUR"
	CurrencyUSD CurrencyType = "USD"
	CurrencyGBP CurrencyType = "GBP"
	CurrencyCHF CurrencyType = "CHF"
	CurrencyJPY CurrencyType = "JPY"
	CurrencyCAD CurrencyType = "CAD"
	CurrencyAUD CurrencyType = "AUD"
)

type Account struct {
	ID                    int64
	OwnerID               int64
	EmployeeID            int64
	AccountNumber         string
	Type                  AccountType
	Subtype               AccountSubtype
	Currency              CurrencyType
	Balance               decimal.Decimal
	ReservedBalance       decimal.Decimal
	DailyLimit            decimal.Decimal
	MonthlyLimit          decimal.Decimal
	DailySpent            decimal.Decimal
	MonthlySpent          decimal.Decimal
	MonthlyMaintenanceFee decimal.Decimal
	CreatedDate           int64
	ExpirationDate        int64
	Status                AccountStatus
}

// AvailableBalance is the spendable portion of the balance, the part not
// held as a reservation.
func (a Account) AvailableBalance() decimal.Decimal {
	return a.Balance.Sub(a.ReservedBalance)
}

// ValidConfiguration reports whether the type/currency combination is
// allowed: CURRENT accounts are dinar only, FOREIGN_CURRENCY accounts must
// not be in dinars.
func ValidConfiguration(accountType AccountType, currency CurrencyType) bool {
	switch accountType {
	case AccountTypeCurrent:
		return currency == CurrencyRSD
	case AccountTypeForeignCurrency:
		return currency != CurrencyRSD
	default:
		return false
	}
}

func ValidCurrency(currency CurrencyType) bool {
	switch currency {
	case CurrencyRSD, CurrencyEUR, CurrencyUSD, CurrencyGBP, CurrencyCHF, CurrencyJPY, CurrencyCAD, CurrencyAUD:
		return true
	}
	return false
}

func ValidSubtype(subtype AccountSubtype) bool {
	_, ok := subtypeDigits[subtype]
	return ok
}

var subtypeDigits = map[AccountSubtype]byte{
	AccountSubtypePersonal: '1',
	AccountSubtypeBusiness: '2',
	AccountSubtypeSavings:  '3',
	AccountSubtypePension:  '4',
	AccountSubtypeYouth:    '5',
	AccountSubtypeStudent:  '6',
	AccountSubtypeStandard: '7',
}

// SubtypeDigit returns the trailing account-number digit for the subtype.
func SubtypeDigit(subtype AccountSubtype) (byte, bool) {
	d, ok := subtypeDigits[subtype]
	return d, ok
}

// TypeDigit returns the 17th account-number digit for the account type.
func TypeDigit(accountType AccountType) byte {
	if accountType == AccountTypeCurrent {
		return '1'
	}
	return '2'
}
