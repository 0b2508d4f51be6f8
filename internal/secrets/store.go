// Package secrets keeps provider API keys out of plain-text config.
// A per-user file (0600) holds AES-GCM-sealed keys per provider. Not a
// replacement for an OS keychain; env vars still take precedence in main.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const keyFileName = "keys.json"

type keyFile struct {
	Providers map[string]string `json:"providers"` // provider -> base64(ciphertext)
}

// Store seals and saves the API key for a provider ("openai", "anthropic").
func Store(provider, apiKey string) error {
	provider = normalize(provider)
	if provider == "" {
		return fmt.Errorf("secrets: provider required")
	}
	path, err := storePath()
	if err != nil {
		return err
	}
	kf, _ := read(path)
	if kf.Providers == nil {
		kf.Providers = map[string]string{}
	}
	sealed, err := seal([]byte(apiKey))
	if err != nil {
		return err
	}
	kf.Providers[provider] = base64.StdEncoding.EncodeToString(sealed)
	return write(path, kf)
}

// Fetch returns the stored API key for a provider.
func Fetch(provider string) (string, error) {
	provider = normalize(provider)
	if provider == "" {
		return "", fmt.Errorf("secrets: provider required")
	}
	path, err := storePath()
	if err != nil {
		return "", err
	}
	kf, err := read(path)
	if err != nil {
		return "", err
	}
	enc, ok := kf.Providers[provider]
	if !ok {
		return "", fmt.Errorf("secrets: no key stored for %s", provider)
	}
	sealed, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", err
	}
	plain, err := open(sealed)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// Delete removes the stored key for a provider.
func Delete(provider string) error {
	provider = normalize(provider)
	if provider == "" {
		return fmt.Errorf("secrets: provider required")
	}
	path, err := storePath()
	if err != nil {
		return err
	}
	kf, err := read(path)
	if err != nil {
		return err
	}
	delete(kf.Providers, provider)
	return write(path, kf)
}

func storePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "pennywise")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, keyFileName), nil
}

func read(path string) (keyFile, error) {
	var kf keyFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return keyFile{}, nil
		}
		return kf, err
	}
	if err := json.Unmarshal(data, &kf); err != nil {
		return kf, err
	}
	return kf, nil
}

func write(path string, kf keyFile) error {
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// machineKey derives a stable obfuscation key from the OS and user name.
func machineKey() []byte {
	seed := fmt.Sprintf("pennywise-%s-%s", runtime.GOOS, os.Getenv("USER"))
	hash := sha256.Sum256([]byte(seed))
	return hash[:]
}

func seal(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(machineKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func open(sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(machineKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("secrets: ciphertext too short")
	}
	nonce, body := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
