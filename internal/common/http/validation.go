package http

import (
	"net/http"
	"strings"

	commoncrypto "github.com/AlibekovAA/task-manager/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
)

// PathID returns the {name} path value when it is a UUID.
func PathID(r *http.Request, name string) (string, error) {
	id := strings.TrimSpace(r.PathValue(name))
	if !commoncrypto.IsValidID(id) {
		return "", commonerrors.ErrInvalidTaskID
	}
	return id, nil
}
