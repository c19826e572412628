package drug

import "time"

// Drug is a dispensable medication in the clinic pharmacy. DrugName is
// unique; Status 1 means on sale, 0 pulled from the shelf.
type Drug struct {
	DrugID        int64     `db:"drug_id" json:"drugId"`
	DrugName      string    `db:"drug_name" json:"drugName"`
	Specification string    `db:"specification" json:"specification"`
	Price         float64   `db:"price" json:"price"`
	Stock         int       `db:"stock" json:"stock"`
	Status        *int      `db:"status" json:"status,omitempty"`
	CreateTime    time.Time `db:"create_time" json:"createTime"`
	UpdateTime    time.Time `db:"update_time" json:"updateTime"`
}

const (
	StatusOnSale  = 1
	StatusOffSale = 0
)

func statusPtr(v int) *int { return &v }
