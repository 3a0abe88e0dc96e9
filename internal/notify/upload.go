package notify

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"courtnotify/internal/types"
)

// maxUploadBytes is the provider's cap on a single attachment upload.
const maxUploadBytes = 2 * 1024 * 1024

// uploadObject is the provider's inline file-upload shape. It rides inside
// the personalisation map as a serialized JSON string; the provider hosts
// the bytes and substitutes a download link into the template.
type uploadObject struct {
	File                       string `json:"file"`
	Filename                   string `json:"filename,omitempty"`
	ConfirmEmailBeforeDownload bool   `json:"confirm_email_before_download"`
	RetentionPeriod            string `json:"retention_period,omitempty"`
}

// PrepareUpload converts attachment bytes into the provider's inline upload
// form. Nil payloads are normalized to empty ones before encoding so the
// serialized shape never branches on null. Payloads over the provider cap
// are rejected up front rather than bounced by the provider.
func PrepareUpload(file []byte, filename string, retention types.RetentionPeriod) (string, error) {
	file = types.NormalizeAttachment(file)

	if len(file) > maxUploadBytes {
		return "", types.NewAppError(
			types.ErrCodeAttachmentTooLarge,
			fmt.Sprintf("attachment %q is %d bytes; provider limit is %d", filename, len(file), maxUploadBytes),
			nil,
		)
	}
	if err := retention.Validate(); err != nil {
		return "", types.NewAppError(types.ErrCodeAttachmentFailed, "invalid retention period", err)
	}

	obj := uploadObject{
		File:                       base64.StdEncoding.EncodeToString(file),
		Filename:                   filename,
		ConfirmEmailBeforeDownload: false,
	}
	if retention > 0 {
		obj.RetentionPeriod = retention.String()
	}

	encoded, err := json.Marshal(obj)
	if err != nil {
		return "", types.NewAppError(types.ErrCodeAttachmentFailed, "serializing upload object", err)
	}
	return string(encoded), nil
}
