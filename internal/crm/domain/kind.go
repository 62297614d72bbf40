package domain

// Kind identifies one of the CRM record types pulled from the bridge.
// The value doubles as the bridge search endpoint segment.
type Kind string

const (
	KindTicket  Kind = "tickets"
	KindCompany Kind = "companies"
	KindContact Kind = "contacts"
	KindDeal    Kind = "deals"
)

// SyncOrder is the fixed order kinds are processed in within one sync
// cycle. Companies come right after tickets so that soft company
// references stand a chance of resolving against a fresh row, but the
// references are never validated.
var SyncOrder = []Kind{KindTicket, KindCompany, KindContact, KindDeal}
