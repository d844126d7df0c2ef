package utils

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes 超过后 bcrypt 返回 ErrPasswordTooLong
const MaxPasswordBytes = 72

// HashPassword 使用 bcrypt（每条记录随机盐）；cost 小于 MinCost 时退回 DefaultCost
func HashPassword(pw string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
