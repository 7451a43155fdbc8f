package mw

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/spellshare/internal/domain"
)

// Identity headers set by the authenticating reverse proxy in front of the service.
const (
	HeaderUserUID   = "X-User-UID"
	HeaderUserEmail = "X-User-Email"
	HeaderUserName  = "X-User-Name"
)

type ownerKey struct{}

// Owner reads the caller identity from the proxy headers and stores it on the
// request context. Requests without identity get an empty Owner; the service
// decides which operations need one.
func Owner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := domain.Owner{
			UID:   strings.TrimSpace(r.Header.Get(HeaderUserUID)),
			Email: strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
			Name:  strings.TrimSpace(r.Header.Get(HeaderUserName)),
		}
		if owner.UID == "" {
			owner = domain.Owner{}
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey{}, owner)))
	})
}

// OwnerFrom returns the identity stored by Owner.
func OwnerFrom(ctx context.Context) domain.Owner {
	owner, _ := ctx.Value(ownerKey{}).(domain.Owner)
	return owner
}
