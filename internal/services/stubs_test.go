package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"alfredoptarigan/resume-matcher/internal/models"
)

var errGatewayDown = errors.New("gateway unavailable")

type stubGateway struct {
	mu      sync.Mutex
	prompts []string
	respond func(prompt string) (string, error)
}

func (s *stubGateway) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	if s.respond == nil {
		return "", errGatewayDown
	}
	return s.respond(prompt)
}

func (s *stubGateway) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

func (s *stubGateway) countContaining(fragment string) int {
	n := 0
	for _, p := range s.calls() {
		if strings.Contains(p, fragment) {
			n++
		}
	}
	return n
}

func failingGateway() *stubGateway {
	return &stubGateway{}
}

func fixedGateway(response string) *stubGateway {
	return &stubGateway{respond: func(string) (string, error) { return response, nil }}
}

// stubExtractor returns the text or error registered for a document's bytes.
type stubExtractor struct {
	texts map[string]string
	errs  map[string]error
}

func (s *stubExtractor) Extract(_ context.Context, data []byte, _ models.DocumentKind) (string, error) {
	key := string(data)
	if err, ok := s.errs[key]; ok {
		return "", err
	}
	return s.texts[key], nil
}
