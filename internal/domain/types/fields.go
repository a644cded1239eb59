package types

// ProductStatus es el estado de disponibilidad de un producto (available ⇄ sold).
type ProductStatus string

const (
	StatusAvailable ProductStatus = "available"
	StatusSold      ProductStatus = "sold"
)

// Nombres de colección en el document store.
const (
	CollectionProducts = "products"
	CollectionUsers    = "users"
	CollectionOrders   = "orders"
)

// Campos conocidos de los documentos. El resto del body se persiste tal cual.
const (
	FieldID = "_id"

	// products
	FieldSellerEmail = "sellerEmail"
	FieldCategory    = "category"
	FieldStatus      = "status"
	FieldAdvertised  = "advertised"
	FieldReport      = "report"
	FieldName        = "name"
	FieldResalePrice = "resalePrice"

	// users
	FieldEmail    = "email"
	FieldRole     = "role"
	FieldVerified = "verified"

	// orders (el comprador usa FieldEmail)
	FieldProductName   = "productName"
	FieldProductID     = "productId"
	FieldPaid          = "paid"
	FieldTransactionID = "transactionId"
)
