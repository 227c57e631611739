package moderation

import "context"

// ContentAnalysis es el veredicto sobre el texto enviado.
type ContentAnalysis struct {
	Spam            bool   `json:"spam"`
	Scam            bool   `json:"scam"`
	Offensive       bool   `json:"offensive"`
	Violence        bool   `json:"violence"`
	Sexual          bool   `json:"sexual"`
	Misleading      bool   `json:"misleading"`
	Discrimination  bool   `json:"discrimination"`
	OverallToxic    bool   `json:"overall_toxic"`
	ConfidenceScore int    `json:"confidence_score"`
	Reason          string `json:"reason"`
}

// ImageAnalysis es el veredicto sobre la imagen enviada.
type ImageAnalysis struct {
	Spam             bool   `json:"spam"`
	Scam             bool   `json:"scam"`
	Offensive        bool   `json:"offensive"`
	Violence         bool   `json:"violence"`
	Sexual           bool   `json:"sexual"`
	Discrimination   bool   `json:"discrimination"`
	OverallHarmful   bool   `json:"overall_harmful"`
	ConfidenceScore  int    `json:"confidence_score"`
	ImageDescription string `json:"image_description"`
	Reason           string `json:"reason"`
}

// CombinedAssessment resume texto + imagen.
type CombinedAssessment struct {
	IsHarmful bool   `json:"is_harmful"`
	Reason    string `json:"reason"`
}

type Result struct {
	ContentAnalysis    ContentAnalysis    `json:"content_analysis"`
	ImageAnalysis      ImageAnalysis      `json:"image_analysis"`
	CombinedAssessment CombinedAssessment `json:"combined_assessment"`
}

// Classifier analiza texto y/o imagen y devuelve un veredicto estructurado.
// text e image pueden venir vacíos (no ambos).
type Classifier interface {
	Classify(ctx context.Context, text string, image []byte) (Result, error)
}

// NopClassifier aprueba todo. Útil en dev y tests.
type NopClassifier struct{}

func (NopClassifier) Classify(ctx context.Context, text string, image []byte) (Result, error) {
	return Result{}, nil
}
