package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// encodeProfileForm builds the multipart body for POST /edit-profile.
// The backend expects a "bio" field and an optional "profile_picture" file.
func encodeProfileForm(bio string, pictureName string, picture io.Reader) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := w.WriteField("bio", bio); err != nil {
		return nil, "", fmt.Errorf("writing bio field: %w", err)
	}

	if picture != nil {
		part, err := w.CreateFormFile("profile_picture", pictureName)
		if err != nil {
			return nil, "", fmt.Errorf("creating picture part: %w", err)
		}
		if _, err := io.Copy(part, picture); err != nil {
			return nil, "", fmt.Errorf("copying picture: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf, w.FormDataContentType(), nil
}
