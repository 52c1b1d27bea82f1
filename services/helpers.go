package services

import (
	"fmt"
	"strings"

	"github.com/torneoveteranos/tournament-system/models"
	"github.com/torneoveteranos/tournament-system/storage"
)

func populateTeamCrestURL(team *models.Team, uploader storage.FileUploader) {
	if team == nil || team.CrestKey == nil || *team.CrestKey == "" || uploader == nil {
		return
	}
	if url := uploader.GetPublicURL(*team.CrestKey); url != "" {
		team.CrestURL = &url
	}
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("%w: %q", ErrCrestContentInvalid, contentType)
	}
}
