package entity

type CartLine struct {
	ProductID string `json:"id" validate:"required"`
	Qty       int    `json:"qty" validate:"min=1"`
}

type Order struct {
	Items    []CartLine `json:"items" validate:"required,min=1,dive"`
	FullName string     `json:"fullname"`
	Phone    string     `json:"phone"`
	Address  string     `json:"address"`
}

func (o *Order) Validate() (bool, []string) {
	return check(o)
}

type OrderLine struct {
	Product  *Product `json:"product"`
	Qty      int      `json:"qty"`
	Subtotal float64  `json:"subtotal"`
}

// CheckoutLink is the pre-filled messaging deep link the shopper opens to
// place the order. Payment is collected on delivery.
type CheckoutLink struct {
	Lines   []OrderLine `json:"lines"`
	Total   float64     `json:"total"`
	Message string      `json:"message"`
	URL     string      `json:"url"`
}
