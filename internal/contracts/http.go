package contracts

type ProductDTO struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	RawPrice        string `json:"raw_price"`
	PriceMinorUnits int64  `json:"price_minor_units"`
	Currency        string `json:"currency"`
	PriceValid      bool   `json:"price_valid"`
	Link            string `json:"link,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
}

type StatusResponse struct {
	Message     string `json:"message"`
	CatalogSize int    `json:"catalog_size"`
}

type CreateCheckoutRequest struct {
	ID string `json:"id"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

type WebhookResponse struct {
	Received  bool   `json:"received"`
	EventID   string `json:"event_id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status string       `json:"status"`
	Error  ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}
