package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"
	"github.com/sr-oliveiraa/smartcaixa/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutStatusForCartValidationFailure(t *testing.T) {
	// A cart line failing boundary validation is a client error, not a
	// commit failure
	err := service.ValidateCheckout(&service.CheckoutRequest{
		Cart:          []service.CartLine{{ProductID: uuid.New(), UnitPrice: -1, Quantity: 1}},
		PaymentMethod: model.PaymentPix,
	})
	require.Error(t, err)
	assert.Equal(t, 400, checkoutStatus(err))
}

func TestCheckoutStatusMapping(t *testing.T) {
	assert.Equal(t, 400, checkoutStatus(service.ErrEmptyCart))
	assert.Equal(t, 400, checkoutStatus(service.ErrInsufficientPayment))
	assert.Equal(t, 400, checkoutStatus(service.ErrInvalidPaymentMethod))
	assert.Equal(t, 400, checkoutStatus(fmt.Errorf("%w para Agua Mineral", service.ErrInsufficientStock)))
	assert.Equal(t, 400, checkoutStatus(fmt.Errorf("%w: %s", service.ErrProductNotFound, uuid.New())))

	// Anything outside the business rejections reports as a server error
	assert.Equal(t, 500, checkoutStatus(errors.New("connection refused")))
}
