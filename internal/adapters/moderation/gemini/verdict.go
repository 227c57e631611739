package gemini

import (
	"encoding/json"
	"strings"

	"pet-adoption-backend/internal/ports/moderation"
)

// parseVerdict extrae el JSON del texto devuelto por el modelo. Los
// modelos suelen envolver la respuesta en fences de markdown o texto
// extra, así que se toma lo que hay entre la primera '{' y la última '}'.
func parseVerdict(raw string) (moderation.Result, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return moderation.Result{}, false
	}

	var result moderation.Result
	if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
		return moderation.Result{}, false
	}
	return result, true
}

func harmlessResult(reason string) moderation.Result {
	var r moderation.Result
	r.ContentAnalysis.Reason = reason
	r.ImageAnalysis.Reason = reason
	r.CombinedAssessment.Reason = reason
	return r
}
