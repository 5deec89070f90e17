// internal/model/order.go
package model

type Order struct {
    ID         int     `db:"id" json:"id"`
    OrderDate  string  `db:"order_date" json:"order_date"`
    Amount     float64 `db:"amount" json:"amount"`
    CustomerID int     `db:"customer_id" json:"customer_id"`
}
