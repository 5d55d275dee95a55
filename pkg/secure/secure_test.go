package secure

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andybarron/preferences-go/pkg/errors"
)

// testIterations keeps PBKDF2 cheap in tests
const testIterations = 16

func newTestManager(password string, opts ...ManagerOption) *Manager {
	opts = append([]ManagerOption{WithIterations(testIterations)}, opts...)
	return NewManager(password, opts...)
}

func TestSealOpenRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		cipher Cipher
	}{
		{"chacha20-poly1305", CipherChaCha20Poly1305},
		{"aes-256-gcm", CipherAES256GCM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager("my most secure password", WithCipher(tt.cipher))

			plaintext := []byte(`{"color":"blue"}`)
			sealed, err := m.Seal(plaintext)
			require.NoError(t, err)

			opened, err := m.Open(sealed)
			require.NoError(t, err)
			assert.Equal(t, plaintext, opened)
		})
	}
}

func TestDefaultCipher(t *testing.T) {
	m := NewManager("pw")
	assert.Equal(t, CipherChaCha20Poly1305, m.Cipher())
}

func TestSealedOutputIsNotPlaintext(t *testing.T) {
	m := newTestManager("pw")

	plaintext := []byte("the secret preference value")
	sealed, err := m.Seal(plaintext)
	require.NoError(t, err)

	assert.NotContains(t, string(sealed), "secret preference")
}

func TestSealIsRandomized(t *testing.T) {
	m := newTestManager("pw")

	a, err := m.Seal([]byte("same input"))
	require.NoError(t, err)
	b, err := m.Seal([]byte("same input"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "fresh salt and nonce should make containers differ")
}

func TestOpenWrongPassword(t *testing.T) {
	sealed, err := newTestManager("correct horse").Seal([]byte("data"))
	require.NoError(t, err)

	_, err = newTestManager("battery staple").Open(sealed)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDecrypt), "got %v", err)
}

func TestOpenCrossCipher(t *testing.T) {
	// The container records its cipher, so a manager configured for one
	// cipher still opens files sealed with the other
	sealed, err := newTestManager("pw", WithCipher(CipherAES256GCM)).Seal([]byte("data"))
	require.NoError(t, err)

	opened, err := newTestManager("pw", WithCipher(CipherChaCha20Poly1305)).Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), opened)
}

func TestOpenTamperedContainer(t *testing.T) {
	m := newTestManager("pw")

	sealed, err := m.Seal([]byte("data"))
	require.NoError(t, err)

	// Flip a ciphertext bit
	tampered := bytes.Clone(sealed)
	tampered[len(tampered)-1] ^= 0x01

	_, err = m.Open(tampered)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDecrypt))
}

func TestOpenGarbage(t *testing.T) {
	m := newTestManager("pw")

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"short", []byte("PR")},
		{"wrong magic", []byte("NOPE this is not a container at all")},
		{"truncated after header", append([]byte("PRFS\x01\x01"), make([]byte, 16)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Open(tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrDecrypt), "got %v", err)
		})
	}
}

func TestOpenUnsupportedVersion(t *testing.T) {
	m := newTestManager("pw")

	sealed, err := m.Seal([]byte("data"))
	require.NoError(t, err)

	sealed[4] = 0x7F
	_, err = m.Open(sealed)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDecrypt))
}

func TestSealStringRoundTrip(t *testing.T) {
	m := newTestManager("pw")

	sealed, err := m.SealString("blue")
	require.NoError(t, err)

	opened, err := m.OpenString(sealed)
	require.NoError(t, err)
	assert.Equal(t, "blue", opened)
}

func TestCipherString(t *testing.T) {
	assert.Equal(t, "chacha20-poly1305", CipherChaCha20Poly1305.String())
	assert.Equal(t, "aes-256-gcm", CipherAES256GCM.String())
	assert.Equal(t, "unknown", Cipher(0x7F).String())
}
