package prescriptionitem

// PrescriptionItem is one drug line on a prescription. DrugName,
// Specification and DrugStatus are joined in on reads so a client can
// render a line without a second lookup and notice a pulled drug.
type PrescriptionItem struct {
	ItemID         int64   `db:"item_id" json:"itemId"`
	PrescriptionID int64   `db:"prescription_id" json:"prescriptionId"`
	DrugID         int64   `db:"drug_id" json:"drugId"`
	Quantity       int     `db:"quantity" json:"quantity"`
	UsageMethod    string  `db:"usage_method" json:"usageMethod,omitempty"`
	Price          float64 `db:"price" json:"price"`

	DrugName      string `db:"drug_name" json:"drugName,omitempty"`
	Specification string `db:"specification" json:"specification,omitempty"`
	DrugStatus    *int   `db:"drug_status" json:"drugStatus,omitempty"`
}
