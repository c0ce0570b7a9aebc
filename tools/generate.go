package tools

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxBatch = 100

// UUIDs generates count identifiers of the given kind: "v4" (random),
// "v7" (time-sortable) or "short" (base-36 nano id). count is clamped
// to [1, 100].
func UUIDs(kind string, count int) ([]string, error) {
	if count < 1 {
		count = 1
	}
	if count > maxBatch {
		count = maxBatch
	}
	out := make([]string, 0, count)
	for range count {
		switch kind {
		case "", "v4":
			out = append(out, uuid.New().String())
		case "v7":
			id, err := uuid.NewV7()
			if err != nil {
				return nil, fmt.Errorf("tools: uuid v7: %w", err)
			}
			out = append(out, id.String())
		case "short":
			out = append(out, shortID(12))
		default:
			return nil, fmt.Errorf("tools: unknown uuid kind %q", kind)
		}
	}
	return out, nil
}

// shortID produces a base-36 id of the given length from crypto/rand.
func shortID(length int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic("tools: crypto/rand failed: " + err.Error())
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(b)
}

// Digest hashes text with the named algorithm and returns the hex digest.
// Supported: md5, sha1, sha256, sha512, bcrypt. The bcrypt output is the
// standard crypt format rather than hex.
func Digest(algo, text string) (string, error) {
	switch strings.ToLower(algo) {
	case "md5":
		sum := md5.Sum([]byte(text))
		return hex.EncodeToString(sum[:]), nil
	case "sha1":
		sum := sha1.Sum([]byte(text))
		return hex.EncodeToString(sum[:]), nil
	case "", "sha256":
		sum := sha256.Sum256([]byte(text))
		return hex.EncodeToString(sum[:]), nil
	case "sha512":
		sum := sha512.Sum512([]byte(text))
		return hex.EncodeToString(sum[:]), nil
	case "bcrypt":
		out, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("tools: bcrypt: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("tools: unknown hash algorithm %q", algo)
	}
}
