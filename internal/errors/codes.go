package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL; the frontend maps these to messages.

const (
	// ==================== Authorization (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // missing/wrong admin secret

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // malformed identifier

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound       = "PRODUCT_NOT_FOUND"        // unknown product
	ProductInvalidName    = "PRODUCT_INVALID_NAME"     // name outside 3-150 chars
	ProductInvalidPrice   = "PRODUCT_INVALID_PRICE"    // negative price
	ProductDescTooLong    = "PRODUCT_DESC_TOO_LONG"    // description over 2000 chars
	ProductLegacyIDExists = "PRODUCT_LEGACY_ID_EXISTS" // duplicate legacy id

	// ==================== Reviews (REVIEW_) ====================
	ReviewUsernameRequired = "REVIEW_USERNAME_REQUIRED" // empty username
	ReviewCommentRequired  = "REVIEW_COMMENT_REQUIRED"  // empty comment text
	ReviewInvalidRating    = "REVIEW_INVALID_RATING"    // rating outside 1-5

	// ==================== Orders (ORDER_) ====================
	OrderNotFound        = "ORDER_NOT_FOUND"         // unknown order
	OrderEmptyItems      = "ORDER_EMPTY_ITEMS"       // checkout without items
	OrderInvalidQuantity = "ORDER_INVALID_QUANTITY"  // quantity below 1
	OrderCustomerMissing = "ORDER_CUSTOMER_REQUIRED" // missing customer name

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // not an image
	UploadFailed          = "UPLOAD_FAILED"            // storage write failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unclassified failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // store unavailable
)
