// Package poster fetches detail-page posters and renders small preview
// images for API responses and dump summaries.
package poster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"net/http"

	"github.com/nfnt/resize"
)

const previewWidth uint = 200
const previewHeight uint = 300

// Fetch downloads the poster image at the given URL.
func Fetch(client *http.Client, url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch poster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poster fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Preview takes raw image data, resizes it, encodes it as a Base64 JPEG,
// and returns it as a data URI string.
func Preview(imageData []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	imgHeight := img.Bounds().Dy()
	imgWidth := img.Bounds().Dx()

	var resizedImg image.Image
	if imgHeight > imgWidth {
		resizedImg = resize.Resize(previewWidth, 0, img, resize.Lanczos3)
	} else {
		resizedImg = resize.Resize(0, previewHeight, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	// Quality 75 is a good balance between size and fidelity.
	if err := jpeg.Encode(&buf, resizedImg, &jpeg.Options{Quality: 75}); err != nil {
		return "", fmt.Errorf("failed to encode jpeg: %w", err)
	}

	base64Str := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/jpeg;base64,%s", base64Str), nil
}

// PreviewFromURL is the composed helper used by the info endpoint.
func PreviewFromURL(client *http.Client, url string) (string, error) {
	data, err := Fetch(client, url)
	if err != nil {
		return "", err
	}
	return Preview(data)
}
