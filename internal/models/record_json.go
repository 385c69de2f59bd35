package models

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// recordJSON is the wire form of UserRecord: debt and lastUpdated are plain JSON numbers.
type recordJSON struct {
	Name        string      `json:"name"`
	Debt        json.Number `json:"debt"`
	LastUpdated json.Number `json:"lastUpdated,omitempty"`
}

func (r UserRecord) MarshalJSON() ([]byte, error) {
	w := recordJSON{
		Name: r.Name,
		Debt: json.Number(r.Debt.String()),
	}
	if r.LastUpdated != nil {
		w.LastUpdated = json.Number(strconv.FormatInt(*r.LastUpdated, 10))
	}
	return json.Marshal(w)
}

func (r *UserRecord) UnmarshalJSON(data []byte) error {
	var w recordJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	debt, err := decimal.NewFromString(w.Debt.String())
	if err != nil {
		debt = decimal.Zero
	}

	*r = UserRecord{Name: w.Name, Debt: debt}
	if w.LastUpdated != "" {
		if ms, err := w.LastUpdated.Int64(); err == nil {
			r.LastUpdated = &ms
		} else if f, err := w.LastUpdated.Float64(); err == nil {
			ms := int64(f)
			r.LastUpdated = &ms
		}
	}
	return nil
}
