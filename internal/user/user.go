package user

// User is a storefront account. JSON tags follow the camelCase convention
// used elsewhere in the project. PurchaseIDs holds the ids of the user's
// ledger records in checkout order.
type User struct {
	ID        int    `json:"userId"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// StorefrontToken is the customer access token for the external commerce
	// backend; rank computation sends it with the order-history query.
	StorefrontToken string `json:"-"`

	PurchaseIDs []int  `json:"purchaseId,omitempty"`
	CreatedAt   string `json:"createAt,omitempty"`
	UpdatedAt   string `json:"updateAt,omitempty"`
}
