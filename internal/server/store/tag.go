package store

import (
	"fmt"
	"regexp"

	"github.com/planfold/planfold/internal/common"
)

// Tag format rules. A tag names a business-data partition; exactly one tag
// is active per running process.
const (
	TagMinLength = 2
	TagMaxLength = 50
)

var tagPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// reserved words can never name a partition: they would collide with the
// auth store and system files.
var reservedTags = map[string]struct{}{
	"auth":     {},
	"sessions": {},
	"system":   {},
}

// ValidateTag checks length, character set and reserved words. It reports
// common.ErrInvalidTag without distinguishing which rule failed.
func ValidateTag(tag string) error {
	if len(tag) < TagMinLength || len(tag) > TagMaxLength {
		return fmt.Errorf("%w: %q", common.ErrInvalidTag, tag)
	}
	if !tagPattern.MatchString(tag) {
		return fmt.Errorf("%w: %q", common.ErrInvalidTag, tag)
	}
	if _, ok := reservedTags[tag]; ok {
		return fmt.Errorf("%w: %q", common.ErrInvalidTag, tag)
	}
	return nil
}

// DataFileName returns the file name of the tagged data store for tag.
func DataFileName(tag string) string {
	return "db-" + tag + ".json"
}
