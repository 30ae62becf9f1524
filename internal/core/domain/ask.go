package domain

// AskRequest is a question for the gateway.
type AskRequest struct {
	// Question is the user's natural-language question.
	Question string

	// Model overrides the configured generation model.
	Model string
}

// Answer is the generated reply to an AskRequest.
type Answer struct {
	// Response is the generated text.
	Response string

	// Model is the model that produced it.
	Model string

	// Context is the retrieved passages, in ranked order.
	Context []string
}
