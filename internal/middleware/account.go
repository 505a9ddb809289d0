package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/younglafire/fruitfarm/internal/account"
	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/logger"
)

type ownerKey struct{}

// WithOwner stores the resolved account address on ctx
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

// OwnerFromContext returns the address stored by the account resolver
func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey{}).(string)
	return owner, ok && owner != ""
}

// AccountResolver resolves the X-Account header into an owner address
type AccountResolver struct {
	accounts account.Service
}

// NewAccountResolver creates the account resolving middleware
func NewAccountResolver(accounts account.Service) *AccountResolver {
	return &AccountResolver{accounts: accounts}
}

// Resolve rejects requests without a valid account and stores the owner on the context
func (a *AccountResolver) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		acct, err := a.accounts.Resolve(r.Context(), r.Header.Get(HeaderAccount))
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				log.Warn(LogMsgAccountRejected, "error", err)
				http.Error(w, ErrMsgMissingAccount, http.StatusBadRequest)
				return
			}
			log.Error(LogMsgAccountResolveFail, "error", err)
			http.Error(w, ErrMsgResolveFailed, http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), acct.Address)))
	})
}
