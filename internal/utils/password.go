package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword 哈希密码
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword 验证密码
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// IsBcryptHash 配置中的密码是否已是 bcrypt 哈希
func IsBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			_, err := bcrypt.Cost([]byte(s))
			return err == nil
		}
	}
	return false
}

// EnsureHashed 明文密码转成哈希，已是哈希的原样返回
func EnsureHashed(password string) (string, error) {
	if IsBcryptHash(password) {
		return password, nil
	}
	return HashPassword(password)
}
