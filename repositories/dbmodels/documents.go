package dbmodels

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/opentransit/editor-backend/models"
)

// Opaque payloads are stored in jsonb columns. A missing column value maps to
// a nil Document.
func AdaptDocument(raw json.RawMessage) (models.Document, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal document column")
	}
	return doc, nil
}

func SerializeDocument(doc models.Document) (json.RawMessage, error) {
	if doc == nil {
		return nil, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "can't marshal document column")
	}
	return raw, nil
}
