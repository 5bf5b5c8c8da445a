package normalize

import (
	"docdesk/internal/domain"
)

const (
	defaultCustomerName = "Customer"
	defaultSupplierName = "Supplier"
)

func (p SourceParty) usable() bool {
	for _, t := range []Text{p.Name, p.Address, p.Contact, p.Phone, p.Email, p.GSTIN, p.State, p.StateCode} {
		if t.usable() {
			return true
		}
	}
	return false
}

func anyUsable(group []SourceParty) bool {
	for _, p := range group {
		if p.usable() {
			return true
		}
	}
	return false
}

func pick(group []SourceParty, field func(SourceParty) Text) string {
	for _, p := range group {
		if v := field(p); v.usable() {
			return v.Value
		}
	}
	return ""
}

// mergeParty resolves each party field from the first candidate that carries it.
func mergeParty(group []SourceParty) *domain.Party {
	contact := pick(group, func(p SourceParty) Text { return p.Contact })
	if contact == "" {
		contact = pick(group, func(p SourceParty) Text { return p.Phone })
	}
	return &domain.Party{
		Name:      pick(group, func(p SourceParty) Text { return p.Name }),
		Address:   pick(group, func(p SourceParty) Text { return p.Address }),
		Contact:   contact,
		Email:     pick(group, func(p SourceParty) Text { return p.Email }),
		GSTIN:     pick(group, func(p SourceParty) Text { return p.GSTIN }),
		State:     pick(group, func(p SourceParty) Text { return p.State }),
		StateCode: pick(group, func(p SourceParty) Text { return p.StateCode }),
	}
}

// salesParties resolves the consignee (ship-to) and buyer (bill-to) blocks.
// The consignee follows customer, then consignee, then buyer keys; the buyer
// block mirrors the consignee unless buyer keys are present.
func salesParties(sp SalesParties, tr *tracker) (consignee, buyer *domain.Party) {
	consigneeGroup := []SourceParty{sp.CustomerFields.party(), sp.ConsigneeFields.party(), sp.Consignee.orEmpty()}
	buyerGroup := []SourceParty{sp.BuyerFields.party(), sp.Buyer.orEmpty()}

	if anyUsable(consigneeGroup) {
		consignee = mergeParty(consigneeGroup)
	} else {
		consignee = mergeParty(buyerGroup)
	}
	if consignee.Name == "" {
		consignee.Name = pick(buyerGroup, func(p SourceParty) Text { return p.Name })
	}
	if consignee.Name == "" {
		tr.mark("consignee.name")
		consignee.Name = defaultCustomerName
	}

	if !anyUsable(buyerGroup) {
		b := *consignee
		return consignee, &b
	}
	buyer = mergeParty(buyerGroup)
	if buyer.Name == "" {
		buyer.Name = consignee.Name
	}
	return consignee, buyer
}

func supplierParty(flat SupplierFields, nested *SourceParty, tr *tracker) *domain.Party {
	supplier := mergeParty([]SourceParty{flat.party(), nested.orEmpty()})
	if supplier.Name == "" {
		tr.mark("supplier.name")
		supplier.Name = defaultSupplierName
	}
	return supplier
}

func sourceParty(p *domain.Party) *SourceParty {
	if p == nil {
		return nil
	}
	return &SourceParty{
		Name:      T(p.Name),
		Address:   T(p.Address),
		Contact:   T(p.Contact),
		Email:     T(p.Email),
		GSTIN:     T(p.GSTIN),
		State:     T(p.State),
		StateCode: T(p.StateCode),
	}
}
