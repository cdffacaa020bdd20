package handlers

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestParseDrawingImage(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{"bare base64", encoded, raw, false},
		{"data URL", "data:image/png;base64," + encoded, raw, false},
		{"data URL without comma", "data:image/png;base64", nil, true},
		{"invalid base64", "!!!not-base64!!!", nil, true},
		{"empty payload", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDrawingImage(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !bytes.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
