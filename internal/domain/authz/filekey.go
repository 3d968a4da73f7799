package authz

import (
	"strings"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// FileKey is a parsed storage object key of the form
// entityID/year/month/filename.
type FileKey struct {
	EntityID uuid.UUID
	Year     string
	Month    string
	Filename string
}

// ParseFileKey parses an object key, validating its shape. The leading
// segment must be a UUID and no segment may be empty.
func ParseFileKey(key string) (FileKey, error) {
	parts := strings.Split(key, "/")
	if len(parts) != 4 {
		return FileKey{}, shared.NewValidationError("file key %q must have the form entity/year/month/filename", key)
	}
	for _, part := range parts {
		if part == "" {
			return FileKey{}, shared.NewValidationError("file key %q must have the form entity/year/month/filename", key)
		}
	}

	entityID, err := uuid.Parse(parts[0])
	if err != nil {
		return FileKey{}, shared.NewValidationError("file key %q does not start with an entity ID", key)
	}

	return FileKey{
		EntityID: entityID,
		Year:     parts[1],
		Month:    parts[2],
		Filename: parts[3],
	}, nil
}

// AuthorizeFileKey decides whether the principal may touch the object
// behind the key. The key's leading entity segment must equal the
// principal's own entity. Note this is stricter than Authorize: there
// is no platform or account admin bypass here, so even PLATFORM_ADMIN
// only reaches files under its own entity prefix. Cross-entity file
// administration goes through impersonation, not through wider keys.
func AuthorizeFileKey(p *identity.Principal, key string) (FileKey, Decision, error) {
	fk, err := ParseFileKey(key)
	if err != nil {
		return FileKey{}, Decision{}, err
	}

	if p == nil {
		return fk, Deny(ReasonUnauthenticated), nil
	}
	if fk.EntityID != p.EntityID {
		return fk, Deny(ReasonWrongTenant), nil
	}
	return fk, Allow(), nil
}
