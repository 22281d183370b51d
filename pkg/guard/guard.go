// Package guard implements the input safety checks that run before any
// document reaches the cache or an external tool.
//
// The guard is a cheap pre-filter on the declared filename and MIME type, not
// a content scanner. Rejection is fail-fast: a rejected document must never
// create a cache entry or trigger a tool invocation.
package guard

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/javascriptjoey/cloudlint/pkg/constants"
	"github.com/javascriptjoey/cloudlint/pkg/fileutil"
	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var log = logger.New("guard:guard")

// ErrInvalidExtension is returned when a filename does not carry a YAML extension.
var ErrInvalidExtension = errors.New("invalid file extension")

// ErrInvalidMIMEType is returned when a declared content type is not a YAML type.
var ErrInvalidMIMEType = errors.New("invalid MIME type")

// CheckExtension verifies that the filename carries a .yaml or .yml
// extension, case-insensitively.
func CheckExtension(filename string) error {
	if !fileutil.HasExtension(filename, constants.AllowedExtensions) {
		log.Printf("Rejected filename: %s", filename)
		return fmt.Errorf("%w: %q must end in .yaml or .yml", ErrInvalidExtension, filename)
	}
	return nil
}

// CheckMIMEType verifies that the declared content type is on the YAML
// allow-list. Parameters (e.g. "; charset=utf-8") are stripped before
// comparison.
func CheckMIMEType(mimeType string) error {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(mimeType))
	}
	for _, allowed := range constants.AllowedMIMETypes {
		if mediaType == allowed {
			return nil
		}
	}
	log.Printf("Rejected MIME type: %s", mimeType)
	return fmt.Errorf("%w: %q is not a YAML content type", ErrInvalidMIMEType, mimeType)
}

// Check runs both guard checks. The extension check runs first; the first
// failure is returned.
func Check(filename, mimeType string) error {
	if err := CheckExtension(filename); err != nil {
		return err
	}
	return CheckMIMEType(mimeType)
}
