package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"cartly/internal/models"
)

// UploadProfilePhoto reads a local image file, encodes it as a data URI, and
// stores it as the caller's profile photo reference. The stored profile is
// returned.
func (g *Gateway) UploadProfilePhoto(ctx context.Context, userID, localPath string) (*models.UserProfile, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, &UploadError{Message: "failed to read image", Err: err}
	}

	return g.setProfilePhoto(ctx, userID, data)
}

// SetProfilePhoto encodes already-read image bytes (e.g. from a multipart
// upload) and stores them as the caller's photo reference.
func (g *Gateway) SetProfilePhoto(ctx context.Context, userID string, data []byte) (*models.UserProfile, error) {
	return g.setProfilePhoto(ctx, userID, data)
}

func (g *Gateway) setProfilePhoto(ctx context.Context, userID string, data []byte) (*models.UserProfile, error) {
	if len(data) == 0 {
		return nil, &UploadError{Message: "image is empty"}
	}
	if g.cfg.MaxPhotoBytes > 0 && int64(len(data)) > g.cfg.MaxPhotoBytes {
		return nil, &UploadError{Message: fmt.Sprintf("image exceeds %d bytes", g.cfg.MaxPhotoBytes)}
	}

	photoURL := EncodeDataURI(data)

	profile, err := g.UpdateUserProfile(ctx, userID, models.ProfileUpdate{PhotoURL: &photoURL})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// EncodeDataURI renders image bytes as a data: URI, sniffing the content type
// from the payload itself.
func EncodeDataURI(data []byte) string {
	mime := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}
