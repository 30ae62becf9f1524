package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptRAGAnswer wraps retrieved context and the user's question.
	// The template expects two %s placeholders: the context block, then the question.
	PromptRAGAnswer = "rag_answer"
)

// DefaultRAGAnswerPrompt is the built-in rag_answer template.
const DefaultRAGAnswerPrompt = `Use the following context to answer the question.
Answer strictly from the context. If the context does not contain the answer, say that you don't know.

Context:
%s

Question: %s

Answer:`
