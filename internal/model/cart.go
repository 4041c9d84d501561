package model

// CartItem is a product selected for purchase plus its quantity. The cart
// lives entirely in local persisted state and is never synced to the backend.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}
