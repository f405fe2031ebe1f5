package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func DocumentUUID(collection, identifier string) uuid.UUID {
	return UUID("go-folio:document:" + strings.TrimSpace(collection) + "/" + strings.TrimSpace(identifier))
}

func QuizUUID(documentID, elementID string) uuid.UUID {
	return UUID("go-folio:quiz:" + strings.TrimSpace(documentID) + ":" + strings.TrimSpace(elementID))
}

// ElementID returns an HTML id for a component invocation. The same
// document, path and component name always produce the same id.
func ElementID(documentID, path, name string) string {
	uid := UUID("go-folio:component:" + documentID + ":" + path + ":" + name)
	compact := strings.ReplaceAll(uid.String(), "-", "")
	prefix := strings.ToLower(strings.TrimSpace(name))
	if prefix == "" {
		prefix = "component"
	}
	return prefix + "-" + compact[:12]
}
