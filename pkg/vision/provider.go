package vision

import "context"

// IDExtraction holds the structured fields read off a photographed
// government ID document.
type IDExtraction struct {
	FullName string `json:"full_name"`
	IDType   string `json:"id_type"`
	IDNumber string `json:"id_number"`
}

// Provider is the contract for a vision backend that parses ID documents.
type Provider interface {
	Extract(ctx context.Context, imagePath string) (*IDExtraction, error)
}
