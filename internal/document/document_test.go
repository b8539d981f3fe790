package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleDay = time.Date(2024, time.March, 5, 12, 30, 0, 0, time.UTC)

// TestEncode_FieldMapping tests the registry JSON key names
func TestEncode_FieldMapping(t *testing.T) {
	body, err := Encode(Sample(sampleDay))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))

	for _, key := range []string{
		"description", "doc_id", "doc_status", "doc_type", "importRequest",
		"owner_inn", "participant_inn", "producer_inn", "production_date",
		"production_type", "products", "reg_date", "reg_number",
	} {
		assert.Contains(t, raw, key)
	}
	assert.Len(t, raw, 13)

	assert.Equal(t, map[string]any{"participantInn": "ParticipantInn"}, raw["description"])
	assert.Equal(t, "LP_INTRODUCE_GOODS", raw["doc_type"])
	assert.Equal(t, true, raw["importRequest"])
	assert.Equal(t, "2024-03-5", raw["production_date"])
	assert.Equal(t, "2024-03-5", raw["reg_date"])

	products, ok := raw["products"].([]any)
	require.True(t, ok)
	require.Len(t, products, 1)

	product := products[0].(map[string]any)
	for _, key := range []string{
		"certificate_document", "certificate_document_date", "certificate_document_number",
		"owner_inn", "producer_inn", "production_date", "tnved_code", "uit_code", "uitu_code",
	} {
		assert.Contains(t, product, key)
	}
	assert.Len(t, product, 9)
	assert.Equal(t, "2024-03-5", product["certificate_document_date"])
}

// TestDecode_RoundTrip tests that a decoded document equals the encoded one
func TestDecode_RoundTrip(t *testing.T) {
	original := SampleWithProducts(sampleDay, 3)

	body, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(body)
	require.NoError(t, err)

	assert.Equal(t, original.DocID, decoded.DocID)
	assert.Equal(t, original.Description, decoded.Description)
	assert.True(t, decoded.RegDate.Equal(original.RegDate.Time))
	require.Len(t, decoded.Products, 3)
	assert.Equal(t, "UitCode-2", decoded.Products[2].UitCode)
	assert.True(t, decoded.Products[1].ProductionDate.Equal(original.ProductionDate.Time))
}

// TestEncode_Unserializable tests that non-JSON values fail to encode
func TestEncode_Unserializable(t *testing.T) {
	_, err := Encode(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}

// TestDocument_Validate tests document type validation
func TestDocument_Validate(t *testing.T) {
	doc := Sample(sampleDay)
	assert.NoError(t, doc.Validate())

	doc.DocType = "LP_SHIP_GOODS"
	assert.Error(t, doc.Validate())

	doc.DocType = ""
	assert.Error(t, doc.Validate())
}

// TestLoad tests reading a document file
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"doc_id": "abc",
		"doc_type": "LP_INTRODUCE_GOODS",
		"reg_date": "2024-12-1",
		"products": [{"uit_code": "010"}]
	}`), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", doc.DocID)
	assert.Equal(t, "2024-12-1", doc.RegDate.String())
	assert.True(t, doc.ProductionDate.IsZero())
	require.Len(t, doc.Products, 1)
	assert.Equal(t, "010", doc.Products[0].UitCode)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"reg_date": "2024/12/01"}`), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)
}
