package helper

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

// QREncodePNG genera el QR de una URL de ingreso como PNG.
// size se ajusta al rango [128, 1024] para no reventar memoria con requests raras.
func QREncodePNG(content string, size int) ([]byte, error) {
	size = clampQRSize(size)
	pngBytes, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return pngBytes, nil
}

// QREncodeWebP genera el QR y lo re-encodea a WebP (payload más liviano para
// proyectar desde el celular). El resize usa NearestNeighbor para que los
// módulos del QR queden nítidos.
func QREncodeWebP(content string, size int) ([]byte, error) {
	size = clampQRSize(size)
	// go-qrcode siempre entrega PNG; generamos grande y ajustamos
	pngBytes, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, fmt.Errorf("qr decode png: %w", err)
	}
	resized := imaging.Resize(img, size, size, imaging.NearestNeighbor)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, resized, &webp.Options{Lossless: true}); err != nil {
		return nil, fmt.Errorf("qr encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func clampQRSize(size int) int {
	if size < 128 {
		return 128
	}
	if size > 1024 {
		return 1024
	}
	return size
}
