package gemini

import "testing"

func TestParseVerdict_PlainJSON(t *testing.T) {
	raw := `{"content_analysis":{"spam":true,"overall_toxic":true,"confidence_score":90,"reason":"spam"},"image_analysis":{},"combined_assessment":{"is_harmful":true,"reason":"spam detectado"}}`

	result, ok := parseVerdict(raw)
	if !ok {
		t.Fatalf("expected parse success")
	}
	if !result.CombinedAssessment.IsHarmful {
		t.Fatalf("expected harmful verdict")
	}
	if !result.ContentAnalysis.Spam || result.ContentAnalysis.ConfidenceScore != 90 {
		t.Fatalf("content analysis not decoded: %+v", result.ContentAnalysis)
	}
}

func TestParseVerdict_MarkdownFences(t *testing.T) {
	raw := "Sure, here is the analysis:\n```json\n{\"content_analysis\":{},\"image_analysis\":{},\"combined_assessment\":{\"is_harmful\":false,\"reason\":\"ok\"}}\n```\n"

	result, ok := parseVerdict(raw)
	if !ok {
		t.Fatalf("expected parse success with fences")
	}
	if result.CombinedAssessment.IsHarmful {
		t.Fatalf("expected harmless verdict")
	}
	if result.CombinedAssessment.Reason != "ok" {
		t.Fatalf("reason = %q", result.CombinedAssessment.Reason)
	}
}

func TestParseVerdict_Garbage(t *testing.T) {
	for _, raw := range []string{"", "no json here", "{broken", "}{"} {
		if _, ok := parseVerdict(raw); ok {
			t.Fatalf("expected parse failure for %q", raw)
		}
	}
}
