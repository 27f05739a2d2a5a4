package dto

// ExportRow is the flat projection of a transaction for CSV and spreadsheet
// export. Tags holds the comma-joined tag names in the transaction's
// association order.
type ExportRow struct {
	Date          string `json:"date"`
	Type          string `json:"type"`
	Category      string `json:"category"`
	Amount        string `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	Note          string `json:"note"`
	Tags          string `json:"tags"`
}

// Values returns the row's fields in header order
func (r ExportRow) Values() []string {
	return []string{r.Date, r.Type, r.Category, r.Amount, r.PaymentMethod, r.Note, r.Tags}
}
