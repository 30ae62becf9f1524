package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// ContextSeparator separates retrieved passages in the context block.
const ContextSeparator = "\n\n"

// PromptComposer builds the augmented prompt sent to the language model.
// Output depends only on its inputs and the template.
type PromptComposer struct {
	prompts driven.PromptStore
}

// NewPromptComposer creates a composer. A nil store uses the built-in template.
func NewPromptComposer(prompts driven.PromptStore) *PromptComposer {
	return &PromptComposer{prompts: prompts}
}

// Compose wraps the retrieved contexts and question in the rag_answer
// template. Contexts keep their order and are never truncated.
func (c *PromptComposer) Compose(contexts []string, question string) string {
	return fmt.Sprintf(c.template(), strings.Join(contexts, ContextSeparator), question)
}

// template loads the override, falling back to the default when it is
// missing or does not take exactly the context and the question.
func (c *PromptComposer) template() string {
	if c.prompts == nil {
		return driven.DefaultRAGAnswerPrompt
	}

	tmpl, err := c.prompts.Load(driven.PromptRAGAnswer)
	if err != nil {
		logger.Warn("Using built-in prompt: %v", err)
		return driven.DefaultRAGAnswerPrompt
	}
	if !validTemplate(tmpl) {
		logger.Warn("Ignoring %s prompt: it must contain exactly two %%s placeholders", driven.PromptRAGAnswer)
		return driven.DefaultRAGAnswerPrompt
	}
	return tmpl
}

func validTemplate(tmpl string) bool {
	if strings.Count(tmpl, "%s") != 2 {
		return false
	}
	return !strings.Contains(fmt.Sprintf(tmpl, "", ""), "%!")
}
