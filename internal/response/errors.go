package response

// ErrCode is a typed error code enum for consistent API error identification.
// The string values are part of the wire contract consumed by the web and
// mobile clients; changing one is a breaking change.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrAuthRequired   ErrCode = "auth_required"
	ErrInvalidSession ErrCode = "invalid_session"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "validation_error"
	ErrInvalidPayload ErrCode = "invalid_payload"

	// ─── Question generation ───────────────────────────────────────────
	ErrGenerationUnavailable ErrCode = "generation_unavailable"
	ErrMalformedAIResponse   ErrCode = "malformed_ai_response"
	ErrValidationFailed      ErrCode = "validation_failed"

	// ─── Chat ──────────────────────────────────────────────────────────
	ErrRateLimited     ErrCode = "rate_limited"
	ErrPaymentRequired ErrCode = "payment_required"
	ErrUpstream        ErrCode = "upstream_error"

	// ─── Payments & subscriptions ──────────────────────────────────────
	ErrInvalidPlan          ErrCode = "invalid_plan"
	ErrOrderCreationFailed  ErrCode = "order_creation_failed"
	ErrVerificationFailed   ErrCode = "verification_failed"
	ErrSubscriptionNotFound ErrCode = "subscription_not_found"
	ErrServiceUnavailable   ErrCode = "service_unavailable"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "not_found"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "internal_error"
)

// GetMessage returns a human-readable message for a given error code.
// Messages are written for direct display in the client UI.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrAuthRequired:
		return "Please sign in to use this feature."
	case ErrInvalidSession:
		return "Your session is invalid or has expired. Please sign in again."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Question generation ───────────────────────────────────────────
	case ErrGenerationUnavailable:
		return "Question generation is temporarily unavailable. Please try again."
	case ErrMalformedAIResponse:
		return "We couldn't prepare your quiz this time. Please try again."
	case ErrValidationFailed:
		return "The generated quiz was incomplete. Please try again."

	// ─── Chat ──────────────────────────────────────────────────────────
	case ErrRateLimited:
		return "Too many requests right now. Please wait a moment and try again."
	case ErrPaymentRequired:
		return "The AI service quota has been exhausted. Please contact support."
	case ErrUpstream:
		return "The AI service returned an unexpected error. Please try again."

	// ─── Payments & subscriptions ──────────────────────────────────────
	case ErrInvalidPlan:
		return "The selected plan does not exist or is no longer available."
	case ErrOrderCreationFailed:
		return "We couldn't create your payment order. Please try again."
	case ErrVerificationFailed:
		return "Payment verification failed. If you were charged, contact support."
	case ErrSubscriptionNotFound:
		return "No pending subscription matches this payment."
	case ErrServiceUnavailable:
		return "Payments are temporarily unavailable. Please try again later."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
