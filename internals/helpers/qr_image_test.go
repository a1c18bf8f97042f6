package helper

import (
	"bytes"
	"testing"
)

func TestQREncodePNG(t *testing.T) {
	img, err := QREncodePNG("https://pragmaprofe.cl/unirse/ABC123", 256)
	if err != nil {
		t.Fatalf("QREncodePNG: %v", err)
	}
	if !bytes.HasPrefix(img, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("la salida debe ser PNG (firma mágica)")
	}
}

func TestQREncodeWebP(t *testing.T) {
	img, err := QREncodeWebP("https://pragmaprofe.cl/unirse/ABC123", 256)
	if err != nil {
		t.Fatalf("QREncodeWebP: %v", err)
	}
	if len(img) < 12 || !bytes.Equal(img[:4], []byte("RIFF")) || !bytes.Equal(img[8:12], []byte("WEBP")) {
		t.Error("la salida debe ser WebP (contenedor RIFF/WEBP)")
	}
}

func TestClampQRSize(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 128},
		{64, 128},
		{512, 512},
		{4096, 1024},
	}
	for _, tc := range cases {
		if got := clampQRSize(tc.in); got != tc.want {
			t.Errorf("clampQRSize(%d) = %d, esperaba %d", tc.in, got, tc.want)
		}
	}
}
