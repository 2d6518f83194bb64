package utils

import "crypto/rand"
import "crypto/sha256"
import "fmt"
import "strconv"
import "time"


func GenerateRandomSHA256Hash() (string, error) {
	randomData := make([]byte, 32)
	_, readErr := rand.Read(randomData)
	if readErr != nil { return GetZero[string](), readErr }

	return hashHex(randomData), nil
}

/*
	Digest Password:
		hex encoded sha256 of the raw password, computed once when a user registers
*/

func DigestPassword(password string) string {
	return hashHex([]byte(password))
}

/*
	Generate Session Token:
		a session token is derived from the password digest and the login timestamp (unix millis),
		so every login produces a fresh token
*/

func GenerateSessionToken(passwordDigest string, timestamp time.Time) string {
	tokenString := passwordDigest + strconv.FormatInt(timestamp.UnixMilli(), 10)
	return hashHex([]byte(tokenString))
}

func hashHex(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data)
	hashBytes := hasher.Sum(nil)

	return fmt.Sprintf("%x", hashBytes)
}
