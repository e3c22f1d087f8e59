package model

import "time"

// Sale is an immutable record of a committed checkout.
type Sale struct {
	ID              string     `db:"id" json:"id"`
	Total           float64    `db:"total" json:"total"`
	CustomerName    string     `db:"customer_name" json:"customer_name"`
	CustomerAddress string     `db:"customer_address" json:"customer_address"`
	CustomerPhone   string     `db:"customer_phone" json:"customer_phone"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	Items           []SaleItem `db:"-" json:"items,omitempty"` // Joined data
}

// SaleItem is one line of a sale. Price is the unit price snapshot taken
// from the ledger at commit time, independent of later product edits.
type SaleItem struct {
	SaleID      string  `db:"sale_id" json:"sale_id"`
	ProductID   string  `db:"product_id" json:"product_id"`
	ProductName string  `db:"product_name" json:"product_name,omitempty"` // Joined data
	Qty         int     `db:"qty" json:"qty"`
	Price       float64 `db:"price" json:"price"`
}
