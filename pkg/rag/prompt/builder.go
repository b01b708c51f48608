package prompt

import (
	"fmt"
	"strings"

	"stakeholder-rag-be/internal/constant"
	"stakeholder-rag-be/internal/entity"
	"stakeholder-rag-be/pkg/llm"
)

// GuardrailMessages builds the dispatcher prompt: the model picks the single
// most relevant role for the question, and the caller compares that against
// the session's role.
func GuardrailMessages(question string) []llm.Message {
	var b strings.Builder
	b.WriteString("Role Descriptions:\n")
	for _, role := range constant.AllRoles {
		fmt.Fprintf(&b, "- %s: %s\n", role, role.Description())
	}
	fmt.Fprintf(&b, "\nUser's Question: %q\n\nBased on the question, which role is most relevant?", question)

	return []llm.Message{
		{
			Role:    "system",
			Content: "You are an expert dispatcher. Your task is to identify the SINGLE most relevant role for the user's question from the list. Respond with only the role title.",
		},
		{
			Role:    "user",
			Content: b.String(),
		},
	}
}

// RewriteMessages asks the model to restate the question in the role's
// domain vocabulary for semantic search. The response must be only the
// rewritten query.
func RewriteMessages(question string, role constant.Role) []llm.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "User's Role: %s\n", role)
	fmt.Fprintf(&b, "Original Question: %q\n\nRewritten Query:", question)

	return []llm.Message{
		{
			Role:    "system",
			Content: "You are an expert query rewriter. Your task is to rewrite the user's query to be specific to their professional role, making it ideal for a semantic database search. Respond with ONLY the rewritten query text and nothing else.",
		},
		{
			Role:    "user",
			Content: b.String(),
		},
	}
}

// NotFoundAnswer is the refusal sentence the generation prompt binds the
// model to when the context can't answer the question.
const NotFoundAnswer = "Based on the provided documents, I cannot answer that question."

// GenerationMessages builds the grounded answering prompt from the reranked
// chunks. Grounding is a hard contract: the model must answer only from the
// supplied snippets.
func GenerationMessages(question string, role constant.Role, chunks []*entity.DocumentChunk) []llm.Message {
	var ctx strings.Builder
	for i, c := range chunks {
		if i > 0 {
			ctx.WriteString("\n---\n")
		}
		fmt.Fprintf(&ctx, "Source Document: '%s'\nContent Snippet: %s", c.SourceFile, c.Content)
	}

	system := fmt.Sprintf(`You are a precise, factual assistant acting as a %s. Your task is to answer the user's question based *only* on the provided context. Follow these rules strictly:
1.  **Reasoning for 'What If':** If the user asks a hypothetical 'what if' question, use the facts from the context to reason about the scenario and provide a step-by-step explanation for your conclusion.
2.  **Be Direct:** For factual questions, directly answer the question. Do not provide long explanations or summarize the entire source document.
3.  **Use Formatting:** Structure your answer with bullet points (*) and bold text (**) to highlight key information.
4.  **Stay in Context:** If the answer is not in the provided context, you must respond with %q.`, role, NotFoundAnswer)

	user := fmt.Sprintf("CONTEXT SNIPPETS:\n---\n%s\n---\n\nQUESTION: %q\n\nANSWER:", ctx.String(), question)

	return []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}
