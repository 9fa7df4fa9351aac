package handler

import (
	"github.com/asaskevich/govalidator"

	dErrors "taskproof/pkg/domain-errors"
)

// VerifyTaskRequest is the body of POST /tasks/{taskID}/verify. All evidence
// categories are optional; absence degrades the matching phase, it is not a
// validation failure.
type VerifyTaskRequest struct {
	Photos      []string `json:"photos"`
	Links       []string `json:"links"`
	Description string   `json:"description"`
}

func (r *VerifyTaskRequest) Validate() error {
	for _, photo := range r.Photos {
		if !govalidator.IsURL(photo) {
			return dErrors.New(dErrors.CodeValidation, "photo is not a valid URL: "+photo)
		}
	}
	for _, link := range r.Links {
		if !govalidator.IsURL(link) {
			return dErrors.New(dErrors.CodeValidation, "link is not a valid URL: "+link)
		}
	}
	return nil
}

// VerifyMediaRequest is the body of POST /media/verify.
type VerifyMediaRequest struct {
	FileURI      string `json:"fileUri"`
	FileType     string `json:"fileType"`
	UserText     string `json:"userText"`
	EnhancedText string `json:"enhancedText"`
}

func (r *VerifyMediaRequest) Validate() error {
	if r.FileURI == "" {
		return dErrors.New(dErrors.CodeValidation, "fileUri is required")
	}
	if !govalidator.IsURL(r.FileURI) {
		return dErrors.New(dErrors.CodeValidation, "fileUri is not a valid URL")
	}
	if r.UserText == "" && r.EnhancedText == "" {
		return dErrors.New(dErrors.CodeValidation, "userText or enhancedText is required")
	}
	return nil
}
