package gemini

// Content is a single message in a Gemini request or response.
type Content struct {
	Role  string `json:"role,omitempty"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// Part holds one text fragment of a Content.
type Part struct {
	Text string `json:"text"`
}

type generateRequest struct {
	Contents []Content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

// apiError is the structured error body Gemini returns on failures such as
// invalid keys or exhausted quota.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
