package tripstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/jetfolio/tripsheet-itinerary-service/internal/app/dto"
)

// Shared documents embed profile images inline, so they are capped at a
// 600px longest edge before storage.
const maxImageEdge = 600

const jpegQuality = 65

// compressDataURL downscales a base64 data URL image. Logos keep PNG so
// transparency survives; everything else re-encodes as JPEG over a
// white background. Any decode or encode failure returns the input
// unchanged, oversized originals are better than a lost image.
func compressDataURL(ctx context.Context, dataURL string, isLogo bool) string {
	if !strings.HasPrefix(dataURL, "data:") {
		return dataURL
	}

	_, payload, found := strings.Cut(dataURL, ",")
	if !found {
		return dataURL
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		slog.WarnContext(ctx, "failed to decode image payload, keeping original",
			slog.String("error", err.Error()))

		return dataURL
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		slog.WarnContext(ctx, "failed to decode image, keeping original",
			slog.String("error", err.Error()))

		return dataURL
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageEdge || bounds.Dy() > maxImageEdge {
		img = imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer

	if isLogo {
		err = imaging.Encode(&buf, img, imaging.PNG)
	} else {
		// JPEG has no alpha channel; flatten onto white first.
		flat := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
		flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
		err = imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	}

	if err != nil {
		slog.WarnContext(ctx, "failed to encode image, keeping original",
			slog.String("error", err.Error()))

		return dataURL
	}

	mime := "image/jpeg"
	if isLogo {
		mime = "image/png"
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func compressProfileImages(ctx context.Context, profile dto.BrokerProfile) dto.BrokerProfile {
	profile.LogoDataURL = compressDataURL(ctx, profile.LogoDataURL, true)
	profile.ExteriorImageDataURL = compressDataURL(ctx, profile.ExteriorImageDataURL, false)
	profile.InteriorImageDataURL = compressDataURL(ctx, profile.InteriorImageDataURL, false)

	return profile
}
