package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-graphview/pkg/entity"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxKeyLength       = 100
	MaxTitleLength     = 200
	MaxMetadataEntries = 100
	MaxMetadataKey     = 100
	MaxLinks           = 1000

	// Entity keys: alphanumeric plus the separators seen in real corpora
	keyPattern = regexp.MustCompile(`^[a-zA-Z0-9._:-]+$`)
)

func init() {
	validate = validator.New()
}

// LinkRequest is an ingested typed link. Type is the raw string form; it is
// normalized onto the closed LinkType enumeration during conversion, with
// the empty string taking the default.
type LinkRequest struct {
	TargetKey string `json:"targetKey" validate:"required,max=100"`
	Type      string `json:"linkType" validate:"omitempty,max=50"`
}

// RecordRequest is a request to ingest or upsert a record
type RecordRequest struct {
	Key             string            `json:"key" validate:"required,max=100"`
	Title           string            `json:"title" validate:"required,max=200"`
	Description     string            `json:"description" validate:"omitempty,max=2000"`
	Metadata        map[string]string `json:"metadata" validate:"omitempty,max=100"`
	LinkedRecords   []LinkRequest     `json:"linkedRecords" validate:"omitempty,max=1000,dive"`
	LinkedDocuments []LinkRequest     `json:"linkedDocuments" validate:"omitempty,max=1000,dive"`
}

// VersionRequest is an ingested document version. VersionID is deliberately
// not required here: versions without an id are skipped (and logged) during
// the repository merge rather than failing the whole document.
type VersionRequest struct {
	VersionID     string            `json:"versionId" validate:"omitempty,max=100"`
	VersionNumber string            `json:"versionNumber" validate:"omitempty,max=50"`
	CreatedAt     string            `json:"createdAt" validate:"omitempty,max=40"`
	Metadata      map[string]string `json:"metadata" validate:"omitempty,max=100"`
}

// DocumentRequest is a request to ingest or upsert a document
type DocumentRequest struct {
	Key             string            `json:"key" validate:"required,max=100"`
	Title           string            `json:"title" validate:"required,max=200"`
	Description     string            `json:"description" validate:"omitempty,max=2000"`
	Metadata        map[string]string `json:"metadata" validate:"omitempty,max=100"`
	Versions        []VersionRequest  `json:"versions" validate:"omitempty,dive"`
	LinkedRecords   []LinkRequest     `json:"linkedRecords" validate:"omitempty,max=1000,dive"`
	LinkedDocuments []LinkRequest     `json:"linkedDocuments" validate:"omitempty,max=1000,dive"`
}

// ValidateRecordRequest validates a record ingestion request
func ValidateRecordRequest(req *RecordRequest) error {
	if req == nil {
		return errors.New("record request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if err := ValidateEntityKey(req.Key); err != nil {
		return err
	}

	if err := validateLinks("LinkedRecords", req.LinkedRecords); err != nil {
		return err
	}
	if err := validateLinks("LinkedDocuments", req.LinkedDocuments); err != nil {
		return err
	}

	return validateMetadata(req.Metadata)
}

// ValidateDocumentRequest validates a document ingestion request
func ValidateDocumentRequest(req *DocumentRequest) error {
	if req == nil {
		return errors.New("document request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if err := ValidateEntityKey(req.Key); err != nil {
		return err
	}

	if err := validateLinks("LinkedRecords", req.LinkedRecords); err != nil {
		return err
	}
	if err := validateLinks("LinkedDocuments", req.LinkedDocuments); err != nil {
		return err
	}

	return validateMetadata(req.Metadata)
}

// ValidateEntityKey validates an entity key
func ValidateEntityKey(key string) error {
	if key == "" {
		return errors.New("entity key cannot be empty")
	}
	if len(key) > MaxKeyLength {
		return fmt.Errorf("entity key '%s' exceeds maximum length of %d characters", key, MaxKeyLength)
	}
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("entity key '%s' contains invalid characters", key)
	}
	return nil
}

// validateLinks checks each link's target key and type membership
func validateLinks(field string, links []LinkRequest) error {
	for i, l := range links {
		if err := ValidateEntityKey(l.TargetKey); err != nil {
			return fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		if _, ok := entity.NormalizeLinkType(l.Type); !ok {
			return fmt.Errorf("%s[%d]: unknown link type '%s'", field, i, l.Type)
		}
	}
	return nil
}

func validateMetadata(metadata map[string]string) error {
	if len(metadata) > MaxMetadataEntries {
		return fmt.Errorf("Metadata: maximum %d entries allowed, got %d", MaxMetadataEntries, len(metadata))
	}
	for key := range metadata {
		if key == "" {
			return errors.New("Metadata: key cannot be empty")
		}
		if len(key) > MaxMetadataKey {
			return fmt.Errorf("Metadata: key '%s' exceeds maximum length of %d characters", key, MaxMetadataKey)
		}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
