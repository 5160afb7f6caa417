package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quizgen",
			objectType:  "extract",
			identifier:  "abc123",
			paramsKey:   nil,
			expectedKey: "pdfquiz:quizgen:extract:abc123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quizgen",
			objectType:  "extract",
			identifier:  "abc123",
			paramsKey:   []string{},
			expectedKey: "pdfquiz:quizgen:extract:abc123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "quizgen",
			objectType:  "extract",
			identifier:  "abc123",
			paramsKey:   []string{"v1"},
			expectedKey: "pdfquiz:quizgen:extract:abc123:v1",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "quizgen",
			objectType:  "extract",
			identifier:  "abc123",
			paramsKey:   []string{"v1", "relaxed", "pdfcpu"},
			expectedKey: "pdfquiz:quizgen:extract:abc123:v1_relaxed_pdfcpu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
