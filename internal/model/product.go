package model

// Product is the inventory ledger row: the authoritative price and stock
// for a single catalog item. Stock is never allowed below zero.
type Product struct {
	BaseModel
	Name  string  `db:"name" json:"name"`
	Price float64 `db:"price" json:"price"`
	Stock int     `db:"stock" json:"stock"`
}
