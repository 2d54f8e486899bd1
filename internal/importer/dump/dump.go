// Package dump reads a copy of the browser storage the original web client
// kept its collections in.
package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/homa/internal/building"
	enc "github.com/MrJamesThe3rd/homa/internal/encoding"
	"github.com/MrJamesThe3rd/homa/internal/snapshot"
)

var ErrEmpty = errors.New("dump contains no known collections")

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes an object keyed by storage slot. Each value is either the
// collection itself or the collection serialized into a string. Collections
// absent from the dump are nil in the result.
func (p *Parser) Parse(r io.Reader) (building.Snapshot, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return building.Snapshot{}, fmt.Errorf("detect encoding: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(utf8r).Decode(&raw); err != nil {
		return building.Snapshot{}, fmt.Errorf("decode dump: %w", err)
	}

	var snap building.Snapshot

	found := 0

	for _, slot := range []struct {
		key  string
		into any
	}{
		{snapshot.KeyUnits, &snap.Units},
		{snapshot.KeyTenants, &snap.Tenants},
		{snapshot.KeyInvoices, &snap.Invoices},
		{snapshot.KeyMaintenance, &snap.Maintenance},
	} {
		value, ok := raw[slot.key]
		if !ok {
			continue
		}

		if err := decodeSlot(value, slot.into); err != nil {
			return building.Snapshot{}, fmt.Errorf("decode %s: %w", slot.key, err)
		}

		found++
	}

	if found == 0 {
		return building.Snapshot{}, ErrEmpty
	}

	return snap, nil
}

func decodeSlot(value json.RawMessage, into any) error {
	var inner string
	if err := json.Unmarshal(value, &inner); err == nil {
		value = json.RawMessage(inner)
	}

	if err := json.Unmarshal(value, into); err != nil {
		return err
	}

	return nil
}
