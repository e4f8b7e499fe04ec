package domain

// ProductType tags catalog entries and quotation line items.
type ProductType string

const (
	ProductService ProductType = "service"
	ProductGood    ProductType = "good"
	ProductKit     ProductType = "kit"
)

// ValidProductTypes is the canonical set of accepted product type strings.
var ValidProductTypes = map[ProductType]bool{
	ProductService: true,
	ProductGood:    true,
	ProductKit:     true,
}

// Label returns the display name used on forms and documents.
func (t ProductType) Label() string {
	switch t {
	case ProductService:
		return "Serviço"
	case ProductGood:
		return "Produto"
	case ProductKit:
		return "Kit"
	default:
		return string(t)
	}
}

type QuotationStatus string

const (
	QuotationOpen     QuotationStatus = "open"
	QuotationApproved QuotationStatus = "approved"
	QuotationRejected QuotationStatus = "rejected"
)

var ValidQuotationStatuses = map[QuotationStatus]bool{
	QuotationOpen:     true,
	QuotationApproved: true,
	QuotationRejected: true,
}

func (s QuotationStatus) Label() string {
	switch s {
	case QuotationOpen:
		return "Aberta"
	case QuotationApproved:
		return "Aprovada"
	case QuotationRejected:
		return "Rejeitada"
	default:
		return string(s)
	}
}

// FreightType is the freight clause of a quotation's commercial terms.
// The empty value means no freight clause was agreed.
type FreightType string

const (
	FreightNone FreightType = ""
	FreightCIF  FreightType = "CIF"
	FreightFOB  FreightType = "FOB"
)

var ValidFreightTypes = map[FreightType]bool{
	FreightNone: true,
	FreightCIF:  true,
	FreightFOB:  true,
}

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleSeller     UserRole = "seller"
	RoleTechnician UserRole = "technician"
)

var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:      true,
	RoleSeller:     true,
	RoleTechnician: true,
}
