package classify

import "context"

// Classification is a document-type label with the classifier's confidence.
// Score is in [0,1] but is not calibrated across labels.
type Classification struct {
	Label string
	Score float64
}

// Classifier tags ingested document text with a type label.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}
