package sessions

import (
	"errors"

	"gorm.io/gorm"

	"campussphere_backend/internals/constants"
	helper "campussphere_backend/internals/helpers"
)

var (
	// Cookie id/token tidak ada sama sekali.
	ErrMissingCredential = errors.New("missing credential")
	// Principal tidak dikenal, tidak punya session aktif, atau token beda.
	ErrInvalidSession = errors.New("invalid session")
	// Sudah ada session aktif di device lain dan caller belum konfirmasi
	// force_logout. Ini warning, bukan error fatal: handler balas 200
	// dengan ask_force.
	ErrActiveElsewhere = errors.New("account active on another device")
)

// Authenticate memvalidasi pasangan (role, id, presentedToken) terhadap
// session store. Token lama otomatis mati begitu login di tempat lain
// me-rotate token di row: cookie lama berhenti cocok.
func Authenticate(db *gorm.DB, role constants.Role, principalID uint, presentedToken string) error {
	if principalID == 0 || presentedToken == "" {
		return ErrMissingCredential
	}
	var s SessionModel
	err := db.Where("role = ? AND principal_id = ?", string(role), principalID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidSession
		}
		return err
	}
	if s.Token != presentedToken {
		return ErrInvalidSession
	}
	return nil
}

// Establish membuat/merotasi session setelah password terverifikasi.
// Kalau masih ada session aktif dan force=false (dan role-nya bukan admin),
// kembalikan ErrActiveElsewhere tanpa menyentuh token lama. Login fresh atau
// forced selalu menerbitkan token baru + simpan device fingerprint.
func Establish(db *gorm.DB, role constants.Role, principalID uint, device string, force bool) (string, error) {
	token := helper.GenerateSessionToken()
	warnConcurrent := !constants.RoleIn(role, constants.NoConcurrentWarningRoles)

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing SessionModel
		err := tx.Where("role = ? AND principal_id = ?", string(role), principalID).First(&existing).Error
		switch {
		case err == nil:
			if warnConcurrent && !force {
				return ErrActiveElsewhere
			}
			existing.Token = token
			existing.Device = device
			return tx.Save(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := SessionModel{
				Role:        string(role),
				PrincipalID: principalID,
				Token:       token,
				Device:      device,
			}
			if cerr := tx.Create(&row).Error; cerr != nil {
				// Dua login bersamaan balapan di unique index: yang kalah
				// diperlakukan sama seperti menemukan session aktif.
				if helper.IsUniqueViolation(cerr) && warnConcurrent && !force {
					return ErrActiveElsewhere
				}
				return cerr
			}
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Clear menghapus session row (logout). Idempotent.
func Clear(db *gorm.DB, role constants.Role, principalID uint) error {
	return db.Where("role = ? AND principal_id = ?", string(role), principalID).
		Delete(&SessionModel{}).Error
}
