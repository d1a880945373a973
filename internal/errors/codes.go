package errors

// Error code constants, mapped by the front end to user-facing messages.
// Format: CATEGORY_SPECIFIC_DETAIL

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // sign-in required
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden   = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly   = "AUTHZ_ADMIN_ONLY"
	AuthzCheckFailed = "AUTHZ_CHECK_FAILED" // admin lookup unreachable

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogInvalidSort     = "CATALOG_INVALID_SORT"
	CatalogInvalidStatus   = "CATALOG_INVALID_STATUS"

	// ==================== Cart (CART_) ====================
	CartInvalidQuantity = "CART_INVALID_QUANTITY"
	CartInvalidPrice    = "CART_INVALID_PRICE"
	CartEmptyCheckout   = "CART_EMPTY_CHECKOUT"

	// ==================== Wishlist (WISHLIST_) ====================
	WishlistProductNotFound = "WISHLIST_PRODUCT_NOT_FOUND"

	// ==================== Session (SESSION_) ====================
	SessionMissing = "SESSION_MISSING"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError  = "INTERNAL_SERVER_ERROR"
	InternalStorageError = "INTERNAL_STORAGE_ERROR" // durable storage I/O
	InternalExternalAPI  = "INTERNAL_EXTERNAL_API"  // identity provider etc.
)
