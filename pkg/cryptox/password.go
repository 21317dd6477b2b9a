package cryptox

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported password hashing schemes.
const (
	HasherArgon2id = "argon2id"
	HasherBcrypt   = "bcrypt"
)

// MinBcryptCost is the lowest work factor a BcryptHasher will use.
const MinBcryptCost = 10

// DefaultBcryptCost is used when a BcryptHasher has no explicit cost.
const DefaultBcryptCost = 12

// ErrPasswordMismatch is returned when a password does not verify.
var ErrPasswordMismatch = errors.New("password does not match")

// PasswordHasher hashes new passwords. Verification is scheme-agnostic, see
// VerifyPassword.
type PasswordHasher interface {
	Name() string
	Hash(password string) (string, error)
}

// NewPasswordHasher returns the hasher for the named scheme.
func NewPasswordHasher(name string) (PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HasherArgon2id:
		return Argon2idHasher{}, nil
	case HasherBcrypt:
		return BcryptHasher{Cost: DefaultBcryptCost}, nil
	default:
		return nil, fmt.Errorf("cryptox: unsupported password hasher %q", name)
	}
}

// Argon2idHasher produces PHC-format Argon2id hashes.
type Argon2idHasher struct{}

func (Argon2idHasher) Name() string { return HasherArgon2id }

func (Argon2idHasher) Hash(password string) (string, error) { return HashPassword(password) }

// BcryptHasher produces bcrypt hashes. The peppered password is pre-hashed
// with HMAC-SHA256 so inputs never hit bcrypt's 72 byte limit.
type BcryptHasher struct {
	Cost int
}

func (BcryptHasher) Name() string { return HasherBcrypt }

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	cost = max(cost, MinBcryptCost)

	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: bcrypt: %w", err)
	}
	return string(hash), nil
}

// HashPassword generates a PHC-format Argon2id hash string including salt and parameters.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey(
		[]byte(password+GetPepper()),
		salt,
		iterations,
		memory,
		parallelism,
		keyLength,
	)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		b64Salt,
		b64Hash,
	), nil
}

// VerifyPassword compares a plaintext password against a stored hash. Both
// Argon2id PHC strings and bcrypt ($2a$/$2b$/$2y$) hashes are accepted, so
// switching PASSWORD_HASHER never locks existing users out.
func VerifyPassword(password, encodedHash string) error {
	if isBcryptHash(encodedHash) {
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), bcryptInput(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return verifyArgon2id(password, encodedHash)
}

func verifyArgon2id(password, encodedHash string) error {
	// Validate structure: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return errors.New("invalid hash format: expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return errors.New("invalid hash format: not argon2id")
	}
	if parts[2] != "v=19" {
		return errors.New("invalid hash format: wrong version")
	}

	var mem, iters uint32
	var par uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par)
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to parse parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode salt: %w", err)
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode hash: %w", err)
	}

	computed := argon2.IDKey(
		[]byte(password+GetPepper()),
		salt,
		iters,
		mem,
		par,
		uint32(len(expectedHash)), // #nosec G115 - If this overflows we have bigger problems
	)

	if subtle.ConstantTimeCompare(computed, expectedHash) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}

func isBcryptHash(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

func bcryptInput(password string) []byte {
	mac := hmac.New(sha256.New, []byte(GetPepper()))
	mac.Write([]byte(password))
	return []byte(base64.RawStdEncoding.EncodeToString(mac.Sum(nil)))
}
