package dto

// CartItem is client-submitted. Any price field the client sends is ignored;
// pricing always comes from the ledger.
type CartItem struct {
	ProductID string `json:"product_id" validate:"required,notblank"`
	Qty       int    `json:"qty" validate:"required,min=1"`
}

type Customer struct {
	Name    string `json:"name" validate:"required,notblank"`
	Address string `json:"address" validate:"required,notblank"`
	Phone   string `json:"phone" validate:"required,notblank"`
}

type CheckoutInput struct {
	Items    []CartItem `json:"items" validate:"required,min=1,dive"`
	Customer Customer   `json:"customer" validate:"required"`
	UserID   string     `json:"-"`
}
