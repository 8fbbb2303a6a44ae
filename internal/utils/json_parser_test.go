package utils

import (
	"reflect"
	"testing"
)

func TestParseAIJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "Pure JSON",
			input: `{"bedrooms": 2, "location": "Manhattan"}`,
			want: map[string]interface{}{
				"bedrooms": float64(2),
				"location": "Manhattan",
			},
			wantErr: false,
		},
		{
			name: "JSON in markdown code block",
			input: "```json\n" +
				`{"max_price": 3000, "room_type": "studio"}` + "\n```",
			want: map[string]interface{}{
				"max_price": float64(3000),
				"room_type": "studio",
			},
			wantErr: false,
		},
		{
			name: "JSON in anonymous code block",
			input: "```\n" +
				`{"location": "downtown"}` + "\n```",
			want: map[string]interface{}{
				"location": "downtown",
			},
			wantErr: false,
		},
		{
			name:  "JSON with surrounding text",
			input: `Here are the parameters: {"bedrooms": 1, "max_price": 2500} as requested.`,
			want: map[string]interface{}{
				"bedrooms":  float64(1),
				"max_price": float64(2500),
			},
			wantErr: false,
		},
		{
			name:  "JSON with trailing comma",
			input: `{"location": "queens", "bedrooms": 3,}`,
			want: map[string]interface{}{
				"location": "queens",
				"bedrooms": float64(3),
			},
			wantErr: false,
		},
		{
			name:  "Braces inside string values",
			input: `The result is {"note": "use {curly} braces", "count": 1} done`,
			want: map[string]interface{}{
				"note":  "use {curly} braces",
				"count": float64(1),
			},
			wantErr: false,
		},
		{
			name:    "Empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Whitespace only",
			input:   "   \n\t  ",
			wantErr: true,
		},
		{
			name:    "No JSON at all",
			input:   "I could not extract any parameters from that query.",
			wantErr: true,
		},
		{
			name:    "Unbalanced braces",
			input:   `{"location": "soho"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := ParseAIJSON(tt.input, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAIJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAIJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseAIJSONIntoStruct(t *testing.T) {
	type params struct {
		Bedrooms *int     `json:"bedrooms"`
		MaxPrice *float64 `json:"max_price"`
		Location *string  `json:"location"`
	}

	var got params
	input := "Sure! ```json\n{\"bedrooms\": 2, \"max_price\": 3000, \"location\": \"Manhattan\"}\n```"
	if err := ParseAIJSON(input, &got); err != nil {
		t.Fatalf("ParseAIJSON() error = %v", err)
	}
	if got.Bedrooms == nil || *got.Bedrooms != 2 {
		t.Errorf("Bedrooms = %v, want 2", got.Bedrooms)
	}
	if got.MaxPrice == nil || *got.MaxPrice != 3000 {
		t.Errorf("MaxPrice = %v, want 3000", got.MaxPrice)
	}
	if got.Location == nil || *got.Location != "Manhattan" {
		t.Errorf("Location = %v, want Manhattan", got.Location)
	}
}
