package services

import "net/http"

// APIError is the closed set of failures surfaced to the transport
// layer. Code is the stable machine-readable contract; Message is for
// humans. Anything that is not an *APIError is reported to clients as
// INTERNAL_SERVER_ERROR without detail.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string { return e.Message }

var (
	ErrInvalidInput = &APIError{
		Code: "INVALID_INPUT", Message: "foodHistoryId and confirm (boolean) are required", Status: http.StatusBadRequest}
	ErrFoodHistoryNotFound = &APIError{
		Code: "FOOD_HISTORY_NOT_FOUND", Message: "food history entry not found", Status: http.StatusNotFound}
	ErrAlreadyConsumed = &APIError{
		Code: "ALREADY_CONSUMED", Message: "this food has already been confirmed", Status: http.StatusBadRequest}
	ErrCharacterNotFound = &APIError{
		Code: "CHARACTER_NOT_FOUND", Message: "character not found", Status: http.StatusNotFound}
	ErrInternal = &APIError{
		Code: "INTERNAL_SERVER_ERROR", Message: "an internal error occurred", Status: http.StatusInternalServerError}

	ErrNoFileUploaded = &APIError{
		Code: "NO_FILE_UPLOADED", Message: "no file uploaded, please choose a food image", Status: http.StatusBadRequest}
	ErrInvalidFileType = &APIError{
		Code: "INVALID_FILE_TYPE", Message: "unsupported file format, use JPEG, JPG, PNG, GIF or WEBP", Status: http.StatusBadRequest}
	ErrFileTooLarge = &APIError{
		Code: "FILE_TOO_LARGE", Message: "file too large, maximum is 5MB", Status: http.StatusBadRequest}
	ErrNotFoodImage = &APIError{
		Code: "NOT_FOOD_IMAGE", Message: "the uploaded image does not appear to contain food", Status: http.StatusBadRequest}
	ErrClassifierUnavailable = &APIError{
		Code: "SERVICE_UNAVAILABLE", Message: "the food detection service is currently unavailable, try again later", Status: http.StatusServiceUnavailable}
	ErrClassifierTimeout = &APIError{
		Code: "SERVICE_TIMEOUT", Message: "the detection timed out, try again with a smaller image", Status: http.StatusGatewayTimeout}
	ErrClassifierRejected = &APIError{
		Code: "ML_SERVICE_ERROR", Message: "the food detection service rejected the image", Status: http.StatusBadGateway}

	ErrInvalidPagination = &APIError{
		Code: "INVALID_PAGINATION", Message: "invalid pagination, page must be >= 1 and limit 1-100", Status: http.StatusBadRequest}
	ErrInvalidSortField = &APIError{
		Code: "INVALID_SORT_FIELD", Message: "invalid sort field, use: createdAt, foodName, calories", Status: http.StatusBadRequest}
	ErrInvalidSortOrder = &APIError{
		Code: "INVALID_SORT_ORDER", Message: "invalid sort order, use: asc or desc", Status: http.StatusBadRequest}
	ErrInvalidPeriod = &APIError{
		Code: "INVALID_PERIOD", Message: "invalid period, use 1-365 days", Status: http.StatusBadRequest}
)
