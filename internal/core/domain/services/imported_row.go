package services

// ImportedOrderRow is one unvalidated row of bulk-import input. Every field
// is kept as the raw string taken from the source cell; nothing here has been
// checked against the domain vocabularies yet, so callers must run rows
// through BulkValidator.ValidateImportedOrders before converting them to
// domain patches.
type ImportedOrderRow struct {
	OrderNumber     string
	CreatedAt       string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Status          string
	PaymentStatus   string
	TotalAmount     string
	Currency        string
	ShippingMethod  string
	ShippingAddress string
	TrackingNumber  string
	Notes           string
	Source          string
	ItemCount       string
	Products        string
}
