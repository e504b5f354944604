package cookie

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/go-playground/errors/v5"
	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/pbkdf2"
)

// GenerateKey returns a random base64 encoded cookie key of the minimum length.
func GenerateKey() (string, error) {
	rKey := securecookie.GenerateRandomKey(96)
	if rKey == nil {
		return "", errors.New("failed to generate random key")
	}

	return base64.StdEncoding.EncodeToString(rKey), nil
}

func createSecureCookie(cookieKey string) (*securecookie.SecureCookie, error) {
	k, err := base64.StdEncoding.DecodeString(cookieKey)
	if err != nil {
		return nil, errors.Wrap(err, "base64.StdEncoding.DecodeString()")
	}
	if len(k) < 96 {
		return nil, errors.New("CookieKey to short. Expect minimum of 96 bytes. (128 bytes when base64 encoded)")
	}

	hSaltIndex := int(k[55] % 4)
	hIndex := int(k[7]%4 + 12)
	saltIndex := int(k[73]%4 + 48)
	index := int(k[37]%4 + 60)

	hash := pbkdf2.Key(k[hIndex:hIndex+32], k[hSaltIndex:hSaltIndex+8], 4356+hIndex*saltIndex, 64, sha256.New)
	block := pbkdf2.Key(k[index:index+32], k[saltIndex:saltIndex+8], 4491+(hSaltIndex+1)*index, 32, sha256.New)

	return securecookie.New(hash, block), nil
}
