// Package secure stores preferences encrypted with a password.
//
// A Manager derives a key from the password with PBKDF2-SHA256 and seals
// data with an authenticated cipher: ChaCha20-Poly1305 by default, AES-256-GCM
// on request. Sealed files carry their salt and nonce, so the password alone
// is enough to open them; a wrong password or a tampered file fails closed
// with a DECRYPT coded error.
//
//	manager := secure.NewManager("my most secure password")
//	store, _ := secure.NewStore(app, manager)
//	_ = store.Save("tokens/github", token)
package secure

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"

	"github.com/andybarron/preferences-go/pkg/errors"
)

// Cipher selects the authenticated encryption algorithm
type Cipher byte

const (
	// CipherChaCha20Poly1305 is the default cipher
	CipherChaCha20Poly1305 Cipher = 0x01

	// CipherAES256GCM is offered for environments that require AES
	CipherAES256GCM Cipher = 0x02
)

// String returns the cipher's display name
func (c Cipher) String() string {
	switch c {
	case CipherChaCha20Poly1305:
		return "chacha20-poly1305"
	case CipherAES256GCM:
		return "aes-256-gcm"
	default:
		return "unknown"
	}
}

// Sealed container framing
const (
	magic      = "PRFS"
	version    = 0x01
	saltSize   = 16
	keySize    = 32
	headerSize = len(magic) + 2 + saltSize // + nonce follows

	// DefaultIterations is the PBKDF2-SHA256 work factor
	DefaultIterations = 100_000
)

// Manager seals and opens byte payloads with a password-derived key
type Manager struct {
	password   []byte
	cipher     Cipher
	iterations int
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithCipher selects the sealing cipher
func WithCipher(c Cipher) ManagerOption {
	return func(m *Manager) {
		m.cipher = c
	}
}

// WithIterations overrides the PBKDF2 work factor. Lowering it weakens the
// password protection; tests use this to stay fast.
func WithIterations(n int) ManagerOption {
	return func(m *Manager) {
		m.iterations = n
	}
}

// NewManager creates a Manager for the given password
func NewManager(password string, opts ...ManagerOption) *Manager {
	m := &Manager{
		password:   []byte(password),
		cipher:     CipherChaCha20Poly1305,
		iterations: DefaultIterations,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Cipher returns the manager's sealing cipher
func (m *Manager) Cipher() Cipher {
	return m.cipher
}

// aead constructs the AEAD for a cipher with the given key
func aead(c Cipher, key []byte) (cipher.AEAD, error) {
	switch c {
	case CipherChaCha20Poly1305:
		return chacha20poly1305.New(key)
	case CipherAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	default:
		return nil, errors.Newf(errors.ErrDecrypt, "unsupported cipher 0x%02X", byte(c))
	}
}

// deriveKey runs PBKDF2-SHA256 over the password and salt
func (m *Manager) deriveKey(salt []byte) []byte {
	return pbkdf2.Key(m.password, salt, m.iterations, keySize, sha256.New)
}

// Seal encrypts plaintext into a self-describing container:
// magic, version, cipher, salt, nonce, ciphertext+tag.
func (m *Manager) Seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, errors.ErrEncrypt, "failed to generate salt")
	}

	a, err := aead(m.cipher, m.deriveKey(salt))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrEncrypt, "failed to construct cipher")
	}

	nonce := make([]byte, a.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(err, errors.ErrEncrypt, "failed to generate nonce")
	}

	sealed := make([]byte, 0, headerSize+len(nonce)+len(plaintext)+a.Overhead())
	sealed = append(sealed, magic...)
	sealed = append(sealed, version, byte(m.cipher))
	sealed = append(sealed, salt...)
	sealed = append(sealed, nonce...)

	// The header is bound as additional data so it cannot be swapped
	return a.Seal(sealed, nonce, plaintext, sealed[:headerSize]), nil
}

// Open decrypts a container produced by Seal. It fails closed on a wrong
// password, a tampered file, or anything that is not a sealed container.
func (m *Manager) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < headerSize || string(sealed[:len(magic)]) != magic {
		return nil, errors.New(errors.ErrDecrypt, "not a sealed preferences container")
	}
	if sealed[len(magic)] != version {
		return nil, errors.Newf(errors.ErrDecrypt, "unsupported container version 0x%02X", sealed[len(magic)])
	}

	c := Cipher(sealed[len(magic)+1])
	salt := sealed[len(magic)+2 : headerSize]

	a, err := aead(c, m.deriveKey(salt))
	if err != nil {
		return nil, err
	}

	rest := sealed[headerSize:]
	if len(rest) < a.NonceSize() {
		return nil, errors.New(errors.ErrDecrypt, "sealed container is truncated")
	}
	nonce := rest[:a.NonceSize()]
	ciphertext := rest[a.NonceSize():]

	plaintext, err := a.Open(nil, nonce, ciphertext, sealed[:headerSize])
	if err != nil {
		return nil, errors.New(errors.ErrDecrypt, "authentication failed: wrong password or tampered data")
	}
	return plaintext, nil
}

// SealString encrypts a string value
func (m *Manager) SealString(value string) ([]byte, error) {
	return m.Seal([]byte(value))
}

// OpenString decrypts a container holding a string value
func (m *Manager) OpenString(sealed []byte) (string, error) {
	plaintext, err := m.Open(sealed)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
