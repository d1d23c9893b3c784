package types

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
)

const (
	zipCodeLength    = 5
	cardNumberLength = 16
)

func NewCreatePaymentRequestFromContext(ctx echo.Context) (*CreatePaymentRequest, error) {
	var body CreatePaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.OrderNumber = strings.TrimSpace(body.OrderNumber)
	body.FirstName = strings.TrimSpace(body.FirstName)
	body.LastName = strings.TrimSpace(body.LastName)

	return &body, nil
}

func (r *CreatePaymentRequest) Validate() error {
	verr := &ValidationError{}

	if strings.TrimSpace(r.GetOrderNumber()) == "" {
		verr.add("orderNumber", msgNotBlank)
	}
	if strings.TrimSpace(r.GetFirstName()) == "" {
		verr.add("firstName", msgNotBlank)
	}
	if strings.TrimSpace(r.GetLastName()) == "" {
		verr.add("lastName", msgNotBlank)
	}
	checkExactLength(verr, "zipCode", r.GetZipCode(), zipCodeLength)
	checkExactLength(verr, "cardNumber", r.GetCardNumber(), cardNumberLength)

	return verr.errOrNil()
}

func checkExactLength(verr *ValidationError, field, value string, length int) {
	if strings.TrimSpace(value) == "" {
		verr.add(field, msgNotBlank)
	}
	if utf8.RuneCountInString(value) != length {
		verr.add(field, "size must be between "+strconv.Itoa(length)+" and "+strconv.Itoa(length))
	}
}

func NewGetPaymentRequestFromContext(ctx echo.Context) (*GetPaymentRequest, error) {
	id, err := strconv.ParseInt(ctx.Param("transactionId"), 10, 64)
	if err != nil {
		verr := &ValidationError{}
		verr.add("transactionId", "must be an integer")
		return nil, verr
	}
	return &GetPaymentRequest{TransactionID: id}, nil
}

// StoreID returns the id as stored and false when no record can carry it.
func (r *GetPaymentRequest) StoreID() (uint64, bool) {
	if r.TransactionID <= 0 {
		return 0, false
	}
	return uint64(r.TransactionID), true
}

func NewGetPaymentByOrderNumberRequestFromContext(ctx echo.Context) *GetPaymentByOrderNumberRequest {
	return &GetPaymentByOrderNumberRequest{
		OrderNumber: strings.TrimSpace(ctx.QueryParam("orderNumber")),
	}
}

func (r *GetPaymentByOrderNumberRequest) Validate() error {
	if r.OrderNumber == "" {
		verr := &ValidationError{}
		verr.add("orderNumber", msgNotBlank)
		return verr
	}
	return nil
}
