package constant

const (
	TurnRoleUser      = "user"
	TurnRoleAssistant = "assistant"
)

// Pipeline tuning. These are fixed contract values, not configuration:
// changing K or N changes answer quality characteristics across every session.
const (
	// RetrievalTopK is how many chunks the vector search returns.
	RetrievalTopK = 10

	// RerankTopN is how many chunks survive cross-encoder reranking
	// and reach the generation prompt.
	RerankTopN = 4

	// ChunkSize / ChunkOverlap control ingestion splitting (runes).
	ChunkSize    = 1000
	ChunkOverlap = 150

	// ClassifyMaxRunes caps the text sent to the document-type classifier.
	ClassifyMaxRunes = 512
)
