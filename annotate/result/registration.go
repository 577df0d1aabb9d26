package result

// RegistrationKeyPoint names one template keypoint and its canonical index
type RegistrationKeyPoint struct {
	Label string `json:"label"`
	Index int    `json:"index"`
}

// RegistrationEdge is one skeleton connection given by keypoint indices
type RegistrationEdge struct {
	Joint1 int `json:"joint1"`
	Joint2 int `json:"joint2"`
}

// Registration is the one time payload sent to the reporting collaborator
// at startup describing the active template schema.  The templateId,
// templateName, keyPoints, and skeleton field names are persisted by
// downstream consumers and must remain stable
type Registration struct {
	SessionID    string                 `json:"sessionId"`
	TemplateID   string                 `json:"templateId"`
	TemplateName string                 `json:"templateName"`
	KeyPoints    []RegistrationKeyPoint `json:"keyPoints"`
	Skeleton     []RegistrationEdge     `json:"skeleton"`
}
