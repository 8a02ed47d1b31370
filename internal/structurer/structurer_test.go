package structurer

import (
	"context"
	"errors"
	"testing"

	"pantry-planner/internal/apperr"
	"pantry-planner/internal/llm"
)

type mockTextGen struct {
	response    string
	shouldError bool
}

func (m *mockTextGen) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	if m.shouldError {
		return llm.ContentResponse{}, errors.New("LLM error")
	}
	return llm.ContentResponse{Content: m.response}, nil
}

func TestStructure(t *testing.T) {
	ctx := context.Background()
	missing := []string{"sesame oil", "2 green onions"}

	t.Run("Success", func(t *testing.T) {
		s := New(&mockTextGen{response: `{
			"items": [
				{"item_name": "sesame oil", "quantity": "1", "metric": "bottle", "category": "Pantry", "status": "pending"},
				{"item_name": "green onion", "quantity": "2", "metric": "count", "category": "Produce", "status": "pending"}
			]
		}`})

		items, _, err := s.Structure(ctx, missing)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(items))
		}
		if items[0].ItemName != "sesame oil" {
			t.Errorf("Expected first row 'sesame oil', got '%s'", items[0].ItemName)
		}
		if items[1].Category != "Produce" {
			t.Errorf("Expected category 'Produce', got '%s'", items[1].Category)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		s := New(&mockTextGen{})
		_, _, err := s.Structure(ctx, nil)
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("MalformedOutput", func(t *testing.T) {
		s := New(&mockTextGen{response: "not json"})
		_, _, err := s.Structure(ctx, missing)
		if !errors.Is(err, apperr.ErrParse) {
			t.Errorf("Expected ErrParse, got %v", err)
		}
	})

	t.Run("RowMissingName", func(t *testing.T) {
		s := New(&mockTextGen{response: `{"items": [{"item_name": "", "quantity": "1"}]}`})
		_, _, err := s.Structure(ctx, missing)
		if !errors.Is(err, apperr.ErrParse) {
			t.Errorf("Expected ErrParse, got %v", err)
		}
	})

	t.Run("NoRows", func(t *testing.T) {
		s := New(&mockTextGen{response: `{"items": []}`})
		_, _, err := s.Structure(ctx, missing)
		if !errors.Is(err, apperr.ErrParse) {
			t.Errorf("Expected ErrParse, got %v", err)
		}
	})

	t.Run("ModelError", func(t *testing.T) {
		s := New(&mockTextGen{shouldError: true})
		_, _, err := s.Structure(ctx, missing)
		if err == nil {
			t.Fatal("Expected an error from the model, got nil")
		}
	})
}
