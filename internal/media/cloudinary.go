// Package media relays form uploads to Cloudinary. Keeping the relay
// server-side keeps the API credentials out of the browser.
package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/medlaunch/onboard-api/internal/config"
)

const baseFolder = "clinic-submissions"

// Uploader stores a file and returns its hosted URL.
type Uploader interface {
	Upload(ctx context.Context, field, submissionID string, file io.Reader) (string, error)
	Delete(ctx context.Context, publicID string) error
}

type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewUploader(cfg *config.MediaConfig) (Uploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}
	return &cloudinaryUploader{cld: cld}, nil
}

// folderFor groups assets per submission, one subfolder per asset kind.
func folderFor(field, submissionID string) string {
	base := fmt.Sprintf("%s/%s", baseFolder, submissionID)
	switch field {
	case "logo":
		return base + "/logos"
	case "pricingFile":
		return base + "/pricing"
	case "doctorPhotos":
		return base + "/doctors"
	case "frontDeskPhoto", "waitingRoomPhoto", "signagePhoto":
		return base + "/clinic-photos"
	default:
		return base
	}
}

// transformationFor caps image dimensions at upload time. Logos stay small,
// clinic and doctor photos keep enough resolution for the site.
func transformationFor(field string) string {
	switch {
	case field == "logo":
		return "c_limit,w_500,h_500/q_auto"
	case strings.Contains(field, "Photo"):
		return "c_limit,w_1200,h_800/q_auto"
	default:
		return ""
	}
}

func (u *cloudinaryUploader) Upload(ctx context.Context, field, submissionID string, file io.Reader) (string, error) {
	params := uploader.UploadParams{
		Folder:         folderFor(field, submissionID),
		PublicID:       fmt.Sprintf("%s_%d", field, time.Now().UnixMilli()),
		ResourceType:   "auto",
		Transformation: transformationFor(field),
	}

	resp, err := u.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (u *cloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	return nil
}
