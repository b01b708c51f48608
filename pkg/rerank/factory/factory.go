package factory

import (
	"fmt"

	"stakeholder-rag-be/pkg/rerank"
	"stakeholder-rag-be/pkg/rerank/jina"
	"stakeholder-rag-be/pkg/rerank/tei"
)

func NewReranker(providerType, baseURL, jinaApiKey string) (rerank.Reranker, error) {
	switch providerType {
	case "tei":
		return tei.NewTEIReranker(baseURL), nil
	case "jina":
		return jina.NewJinaReranker(jinaApiKey), nil
	default:
		return nil, fmt.Errorf("unsupported reranker provider: %s", providerType)
	}
}
