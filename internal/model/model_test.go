package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	user := &User{Username: "caixa"}
	require.NoError(t, user.SetPassword("segredo123"))

	assert.NotEqual(t, "segredo123", user.Password, "password must be stored hashed")
	assert.True(t, user.CheckPassword("segredo123"))
	assert.False(t, user.CheckPassword("errada"))
}

func TestPaymentMethodValid(t *testing.T) {
	for _, method := range PaymentMethods {
		assert.True(t, method.Valid(), "method %s", method)
	}
	assert.False(t, PaymentMethod("cheque").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestCashClosingTotalFor(t *testing.T) {
	closing := &CashClosing{
		TotalPix:    50,
		TotalDebit:  30,
		TotalCredit: 0,
		TotalCash:   20,
	}

	assert.Equal(t, 50.0, closing.TotalFor(PaymentPix))
	assert.Equal(t, 30.0, closing.TotalFor(PaymentDebit))
	assert.Equal(t, 0.0, closing.TotalFor(PaymentCredit))
	assert.Equal(t, 20.0, closing.TotalFor(PaymentCash))
	assert.Equal(t, 0.0, closing.TotalFor(PaymentMethod("cheque")))
}

func TestShiftIsOpen(t *testing.T) {
	shift := &Shift{Status: ShiftOpen}
	assert.True(t, shift.IsOpen())

	shift.Status = ShiftClosed
	assert.False(t, shift.IsOpen())

	shift.Status = ShiftAbandoned
	assert.False(t, shift.IsOpen())
}
