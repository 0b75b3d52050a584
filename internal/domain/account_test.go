package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAvailableBalanceExcludesReservation(t *testing.T) {
	account := Account{
		Balance:         decimal.NewFromInt(1000),
		ReservedBalance: decimal.NewFromInt(100),
	}
	if !account.AvailableBalance().Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected available 900, got %s", account.AvailableBalance())
	}
}

func TestValidConfiguration(t *testing.T) {
	cases := []struct {
		accountType AccountType
		currency    CurrencyType
		want        bool
	}{
		{AccountTypeCurrent, CurrencyRSD, true},
		{AccountTypeCurrent, CurrencyEUR, false},
		{AccountTypeForeignCurrency, CurrencyEUR, true},
		{AccountTypeForeignCurrency, CurrencyUSD, true},
		{AccountTypeForeignCurrency, CurrencyRSD, false},
		{AccountType("UNKNOWN"), CurrencyRSD, false},
	}

	for _, tc := range cases {
		if got := ValidConfiguration(tc.accountType, tc.currency); got != tc.want {
			t.Fatalf("ValidConfiguration(%s, %s) = %v, want %v", tc.accountType, tc.currency, got, tc.want)
		}
	}
}

func TestAccountPatchAppliesOnlyPresentFields(t *testing.T) {
	account := Account{
		AccountNumber: "111000112345678911",
		DailyLimit:    decimal.NewFromInt(500),
		MonthlyLimit:  decimal.NewFromInt(9000),
		Status:        AccountStatusActive,
	}

	daily := decimal.NewFromInt(750)
	blocked := AccountStatusBlocked
	AccountPatch{DailyLimit: &daily, Status: &blocked}.Apply(&account)

	if !account.DailyLimit.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("expected daily limit 750, got %s", account.DailyLimit)
	}
	if !account.MonthlyLimit.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("expected untouched monthly limit, got %s", account.MonthlyLimit)
	}
	if account.Status != AccountStatusBlocked {
		t.Fatalf("expected BLOCKED, got %s", account.Status)
	}
	if account.AccountNumber != "111000112345678911" {
		t.Fatalf("expected untouched account number, got %s", account.AccountNumber)
	}

	AccountPatch{}.Apply(&account)
	if !account.DailyLimit.Equal(decimal.NewFromInt(750)) || account.Status != AccountStatusBlocked {
		t.Fatal("expected empty patch to change nothing")
	}
}

func TestPairKeyAndRateLookup(t *testing.T) {
	table := RateChange{
		Year:  2026,
		Month: 3,
		Rates: map[string]decimal.Decimal{
			"RSD/EUR": decimal.RequireFromString("0.0085"),
		},
	}

	rate, ok := table.Rate(CurrencyRSD, CurrencyEUR)
	if !ok {
		t.Fatal("expected RSD/EUR rate to be present")
	}
	if !rate.Equal(decimal.RequireFromString("0.0085")) {
		t.Fatalf("unexpected rate %s", rate)
	}

	// The reverse pair is a separate entry, never derived.
	if _, ok := table.Rate(CurrencyEUR, CurrencyRSD); ok {
		t.Fatal("expected missing reverse pair")
	}
}
