package suppliers

// Supplier is one vendor the business buys from. The ID is assigned on
// creation and never changes.
type Supplier struct {
	ID       string
	Name     string
	Location string
	Contact  string
}

// AddInput carries the caller-supplied fields for creating or updating
// a supplier. Contact accepts an email address or a phone number.
type AddInput struct {
	Name     string `validate:"required"`
	Location string `validate:"required"`
	Contact  string `validate:"required,contact"`
}
