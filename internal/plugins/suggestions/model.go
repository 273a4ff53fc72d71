// Package suggestions drafts class descriptions for teachers with an
// external text-generation model. The model is optional; without an API key
// every request answers 503.
package suggestions

// ClassDescriptionRequest is the body of POST /suggestions/class-description.
type ClassDescriptionRequest struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Subject  *string `json:"subject" validate:"omitempty,max=120"`
	Modality *string `json:"modality" validate:"omitempty,max=20"`
}

// ClassDescriptionInput is the validated input for a description draft.
type ClassDescriptionInput struct {
	Title    string
	Subject  *string
	Modality *string
}

// Suggestion is the generated text.
type Suggestion struct {
	Text string `json:"text"`
}
