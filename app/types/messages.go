package types

type CreatePaymentRequest struct {
	OrderNumber string `json:"orderNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	ZipCode     string `json:"zipCode"`
	CardNumber  string `json:"cardNumber"`
}

func (r *CreatePaymentRequest) GetOrderNumber() string {
	if r == nil {
		return ""
	}
	return r.OrderNumber
}

func (r *CreatePaymentRequest) GetFirstName() string {
	if r == nil {
		return ""
	}
	return r.FirstName
}

func (r *CreatePaymentRequest) GetLastName() string {
	if r == nil {
		return ""
	}
	return r.LastName
}

func (r *CreatePaymentRequest) GetZipCode() string {
	if r == nil {
		return ""
	}
	return r.ZipCode
}

func (r *CreatePaymentRequest) GetCardNumber() string {
	if r == nil {
		return ""
	}
	return r.CardNumber
}

type GetPaymentRequest struct {
	TransactionID int64
}

type GetPaymentByOrderNumberRequest struct {
	OrderNumber string
}

type RegisterWebhookRequest struct {
	URL string `json:"url"`
}

func (r *RegisterWebhookRequest) GetURL() string {
	if r == nil {
		return ""
	}
	return r.URL
}

type GetWebhookRequest struct {
	ID uint64
}

// PaymentResponse is both the API summary of a payment and the body posted
// to webhook subscribers. It never carries customer or card data.
type PaymentResponse struct {
	TransactionID uint64 `json:"transactionId"`
	OrderNumber   string `json:"orderNumber"`
	Status        string `json:"status"`
}

type WebhookResponse struct {
	ID  uint64 `json:"id"`
	URL string `json:"url"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
