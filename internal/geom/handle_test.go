package geom

import "testing"

func TestParseHandle(t *testing.T) {
	tests := []struct {
		in      string
		want    Handle
		wantErr bool
	}{
		{in: "right", want: Right},
		{in: "bottom", want: Bottom},
		{in: "top", want: Top},
		{in: "left", want: Left},
		{in: "bottom-right", want: BottomRight},
		{in: "Top-Left", want: TopLeft},
		{in: " top-right ", want: TopRight},
		{in: "bottom-left", want: BottomLeft},
		{in: "", wantErr: true},
		{in: "middle", wantErr: true},
		{in: "top-bottom", wantErr: true},
		{in: "left-right", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHandle(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHandle(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHandle(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHandle(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHandleStringRoundTrip(t *testing.T) {
	for _, h := range AllHandles {
		got, err := ParseHandle(h.String())
		if err != nil {
			t.Fatalf("ParseHandle(%q): %v", h.String(), err)
		}
		if got != h {
			t.Errorf("round trip of %v gave %v", h, got)
		}
	}
}

func TestHandleValid(t *testing.T) {
	if Handle(0).Valid() {
		t.Error("zero handle should be invalid")
	}
	if (Top | Bottom).Valid() {
		t.Error("top|bottom should be invalid")
	}
	if Handle(1 << 6).Valid() {
		t.Error("unknown bit should be invalid")
	}
	for _, h := range AllHandles {
		if !h.Valid() {
			t.Errorf("%v should be valid", h)
		}
	}
}
