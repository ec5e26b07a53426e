package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	IMEI          string  `json:"imei" binding:"omitempty,max=100"`
	Model         string  `json:"model" binding:"required,min=2,max=255"`
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Price         float64 `json:"price" binding:"min=0"`
	OfferPrice    float64 `json:"offer_price" binding:"min=0"`
	Quantity      int     `json:"quantity" binding:"min=0"`
	QuantityAlert int     `json:"quantity_alert" binding:"min=0"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Model         *string  `json:"model" binding:"omitempty,min=2,max=255"`
	Name          *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Price         *float64 `json:"price" binding:"omitempty,min=0"`
	OfferPrice    *float64 `json:"offer_price" binding:"omitempty,min=0"`
	Quantity      *int     `json:"quantity" binding:"omitempty,min=0"`
	QuantityAlert *int     `json:"quantity_alert" binding:"omitempty,min=0"`
	Status        *string  `json:"status"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
