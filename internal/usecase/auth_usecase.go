package usecase

import (
	"crypto/subtle"

	"oumybeauty/pkg/errors"
	"oumybeauty/pkg/logger"
)

// AdminFlagKey is the per-client flag that marks an authenticated admin.
const AdminFlagKey = "adminAuthenticated"

// FlagStore is the per-client state the admin flag lives in.
type FlagStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

type AdminCredentials struct {
	ID     string
	Secret string
}

// AuthUseCase checks the fixed admin credential pair. There is no expiry and
// no server-side session record: the flag is the whole authorization.
type AuthUseCase struct {
	creds AdminCredentials
}

func NewAuthUseCase(creds AdminCredentials) *AuthUseCase {
	return &AuthUseCase{creds: creds}
}

func (uc *AuthUseCase) Login(store FlagStore, id, secret string) error {
	idOK := subtle.ConstantTimeCompare([]byte(id), []byte(uc.creds.ID)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(secret), []byte(uc.creds.Secret)) == 1
	if !idOK || !secretOK {
		logger.Warn("Rejected admin login for id %q", id)
		return errors.Unauthorized("Invalid admin credentials", nil)
	}

	store.Set(AdminFlagKey, "true")
	logger.Info("Admin %s logged in", id)
	return nil
}

func (uc *AuthUseCase) Logout(store FlagStore) {
	store.Delete(AdminFlagKey)
}

func (uc *AuthUseCase) IsAuthenticated(store FlagStore) bool {
	v, ok := store.Get(AdminFlagKey)
	return ok && v == "true"
}
