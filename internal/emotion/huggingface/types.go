package huggingface

type inferenceRequest struct {
	Inputs     string      `json:"inputs"`
	Parameters *parameters `json:"parameters,omitempty"`
}

type parameters struct {
	TopK int `json:"top_k,omitempty"`
}

// labelScore is one label of a text-classification response.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type apiError struct {
	Error string `json:"error"`
}
