// Package document defines the registry document payload submitted to the
// document creation endpoint and its JSON mapping.
//
// The field names follow the registry API exactly, mixing snake_case keys
// ("doc_id") with the two camelCase ones ("participantInn", "importRequest").
// Dates use the registry's yyyy-MM-d format, see Date.
package document

import (
	"fmt"
	"os"

	"github.com/concave-dev/crpt/internal/validate"
	"github.com/goccy/go-json"
)

// DocType identifies the registry operation a document performs.
type DocType string

// DocTypeIntroduceGoods is the only document type the endpoint accepts.
const DocTypeIntroduceGoods DocType = "LP_INTRODUCE_GOODS"

// Description carries the participant the document is filed for.
type Description struct {
	ParticipantInn string `json:"participantInn"`
}

// Document is the payload of a single create call. The submitter treats it as
// opaque; Validate is only applied by the gateway before queueing.
type Document struct {
	Description    *Description `json:"description"`
	DocID          string       `json:"doc_id"`
	DocStatus      string       `json:"doc_status"`
	DocType        DocType      `json:"doc_type" validate:"required,oneof=LP_INTRODUCE_GOODS"`
	ImportRequest  bool         `json:"importRequest"`
	OwnerInn       string       `json:"owner_inn"`
	ParticipantInn string       `json:"participant_inn"`
	ProducerInn    string       `json:"producer_inn"`
	ProductionDate Date         `json:"production_date"`
	ProductionType string       `json:"production_type"`
	Products       []Product    `json:"products" validate:"dive"`
	RegDate        Date         `json:"reg_date"`
	RegNumber      string       `json:"reg_number"`
}

// Product is a single goods entry of a Document.
type Product struct {
	CertificateDocument       string `json:"certificate_document"`
	CertificateDocumentDate   Date   `json:"certificate_document_date"`
	CertificateDocumentNumber string `json:"certificate_document_number"`
	OwnerInn                  string `json:"owner_inn"`
	ProducerInn               string `json:"producer_inn"`
	ProductionDate            Date   `json:"production_date"`
	TnvedCode                 string `json:"tnved_code"`
	UitCode                   string `json:"uit_code"`
	UituCode                  string `json:"uitu_code"`
}

// Validate checks the document type. Everything else is left to the registry.
func (d *Document) Validate() error {
	if err := validate.ValidateStruct(d); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	return nil
}

// Encode serializes any document value to the JSON body sent to the registry.
func Encode(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return body, nil
}

// Decode parses a registry JSON document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// Load reads a document from a JSON file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}
	return Decode(data)
}
