package pos

// MenuItem is a sellable drink as served by the ordering backend.
// Cart lines capture a snapshot of the item at insert time; a later
// catalog refresh never changes lines already in a cart.
type MenuItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Ingredients string  `json:"ingredients,omitempty"`
	Icon        string  `json:"icon,omitempty"`
}

// AddOn is a purchasable extra (boba, pudding, ...) priced as a
// surcharge on top of the base drink.
type AddOn struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
