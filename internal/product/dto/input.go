package dto

type CreateProductInput struct {
	Name  string  `json:"name" validate:"required,notblank"`
	Price float64 `json:"price" validate:"min=0"`
	Stock int     `json:"stock" validate:"min=0"`
}

type UpdateProductInput struct {
	Name  string  `json:"name" validate:"required,notblank"`
	Price float64 `json:"price" validate:"min=0"`
	Stock int     `json:"stock" validate:"min=0"`
}

type AdjustStockInput struct {
	QuantityChange int    `json:"quantity_change" validate:"required"`
	Reason         string `json:"reason" validate:"required,notblank"`
	UserID         string `json:"-"`
}
