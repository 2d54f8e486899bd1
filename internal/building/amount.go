package building

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// wholeToman rounds a stored amount half away from zero. Stored amounts may
// carry fractions or be null; null reads as 0.
func wholeToman(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", n, err)
	}

	return d.Round(0).IntPart(), nil
}

func (u *Unit) UnmarshalJSON(b []byte) error {
	type plain Unit

	aux := struct {
		*plain
		BaseRent json.Number `json:"baseRent"`
	}{plain: (*plain)(u)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	rent, err := wholeToman(aux.BaseRent)
	if err != nil {
		return err
	}

	u.BaseRent = rent

	return nil
}

func (i *Invoice) UnmarshalJSON(b []byte) error {
	type plain Invoice

	aux := struct {
		*plain
		Amount json.Number `json:"amount"`
	}{plain: (*plain)(i)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	amount, err := wholeToman(aux.Amount)
	if err != nil {
		return err
	}

	i.Amount = amount

	return nil
}

func (r *MaintenanceRecord) UnmarshalJSON(b []byte) error {
	type plain MaintenanceRecord

	aux := struct {
		*plain
		Amount json.Number `json:"amount"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	amount, err := wholeToman(aux.Amount)
	if err != nil {
		return err
	}

	r.Amount = amount

	return nil
}
