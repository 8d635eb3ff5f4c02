package lib

// Entity is a sensitive span located by an extractor. StartIndex and EndIndex are
// half-open rune offsets into the document the entity was found in.
type Entity struct {
	Text       string `json:"text"`
	Label      string `json:"label"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
}

// Replacement describes one substitution applied to a document. Offsets refer to
// the original document, not the rewritten one.
type Replacement struct {
	OriginalText   string `json:"original_text"`
	Label          string `json:"label"`
	StartIndex     int    `json:"start_index"`
	EndIndex       int    `json:"end_index"`
	AnonymizedText string `json:"anonymized_text"`
}
