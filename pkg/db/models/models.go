package models

// All lists every persisted model, in dependency order, for schema bootstrap
// on sqlite where the postgres migrations do not apply.
func All() []any {
	return []any{
		&Store{},
		&Product{},
		&Offer{},
		&Order{},
		&OrderLineItem{},
		&OrderStoreFee{},
	}
}
