package models

// Classification is the classifier model's verdict for an uploaded image.
type Classification struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
	ClassID     int     `json:"classId"`
}

// ImageUpload carries the raw bytes of an uploaded picture through the
// discovery workflow.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AnalysisResult is the terminal outcome of one discovery call, assembled
// into the response body by the controller.
type AnalysisResult struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
	ClassID     int     `json:"classId"`
	Message     string  `json:"message"`
	Score       int     `json:"score"`
}
