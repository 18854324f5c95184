package deepface

// analyzeRequest is the JSON body for POST /analyze.
type analyzeRequest struct {
	Img              string   `json:"img"`
	Actions          []string `json:"actions"`
	DetectorBackend  string   `json:"detector_backend"`
	EnforceDetection bool     `json:"enforce_detection"`
}

// analyzeResponse is the JSON response for POST /analyze.
type analyzeResponse struct {
	Results []faceResult `json:"results"`
}

// faceResult is the analysis of a single detected face.
type faceResult struct {
	DominantEmotion string             `json:"dominant_emotion"`
	Emotion         map[string]float64 `json:"emotion"`
	Region          region             `json:"region"`
	FaceConfidence  float64            `json:"face_confidence"`
}

type region struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}
