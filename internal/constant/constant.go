package constant

const (
	// ContextKeyRequestID is the fiber.Ctx locals key under which the
	// per-request id is stored.
	ContextKeyRequestID = "requestid"

	// RequestIDHeader is the response header carrying the request id.
	RequestIDHeader = "X-Riftcoach-Request-ID"

	// DefaultVoice is the voice used for speech synthesis when the caller
	// does not pick one.
	DefaultVoice = "george"
)
