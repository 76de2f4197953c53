package domain

// Extraction is the typed response of a TermSource: the document the
// phrases were extracted from and the phrases in service order.
type Extraction struct {
	DocumentID string
	Phrases    []string
}

// Result holds the outcome of one extraction pipeline run.
type Result struct {
	DocumentID  string
	Terms       []string
	Destination string
	Details     map[string]interface{}
}
