package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/banka1/banking-service/internal/domain"
)

// DigitSource yields one uniform digit in [0, 9]. A failing source aborts
// generation; account numbers are never built from degraded randomness.
type DigitSource func() (int, error)

var ten = big.NewInt(10)

func cryptoDigitSource() (int, error) {
	n, err := rand.Int(rand.Reader, ten)
	if err != nil {
		return 0, fmt.Errorf("read random digit: %w", err)
	}
	return int(n.Int64()), nil
}

// AccountNumberGenerator builds 18-digit account numbers: a 7-digit
// institution/branch prefix, 9 random digits, one type digit and one
// subtype digit. Uniqueness is the caller's job; the generator is free to
// collide.
type AccountNumberGenerator struct {
	prefix string
	digit  DigitSource
}

func NewAccountNumberGenerator(prefix string) (*AccountNumberGenerator, error) {
	return NewAccountNumberGeneratorWithSource(prefix, cryptoDigitSource)
}

func NewAccountNumberGeneratorWithSource(prefix string, digit DigitSource) (*AccountNumberGenerator, error) {
	prefix = strings.TrimSpace(prefix)
	if len(prefix) != 7 || !digitsOnly(prefix) {
		return nil, fmt.Errorf("bank prefix must be exactly 7 digits, got %q", prefix)
	}
	if digit == nil {
		return nil, fmt.Errorf("digit source is required")
	}
	return &AccountNumberGenerator{prefix: prefix, digit: digit}, nil
}

func (g *AccountNumberGenerator) Generate(accountType domain.AccountType, subtype domain.AccountSubtype) (string, error) {
	subtypeDigit, ok := domain.SubtypeDigit(subtype)
	if !ok {
		return "", fmt.Errorf("unknown account subtype %q", subtype)
	}

	var sb strings.Builder
	sb.Grow(18)
	sb.WriteString(g.prefix)

	for i := 0; i < 9; i++ {
		d, err := g.digit()
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + d))
	}

	sb.WriteByte(domain.TypeDigit(accountType))
	sb.WriteByte(subtypeDigit)

	return sb.String(), nil
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
